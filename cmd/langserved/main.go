// Package main is the entry point for langserved, a multi-tenant
// language-processing HTTP service fronting per-language spelling,
// grammar, and hyphenation engines.
//
// # File Index
//
//   - main.go       - entry point, rootCmd, global flags
//   - cmd_serve.go  - serve subcommand: boots bootstrap, watcher, httpapi
//   - cmd_status.go - status subcommand: lipgloss-styled snapshot of a running instance
//   - cmd_docs.go   - docs subcommand: glamour-rendered endpoint reference
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "langserved",
	Short: "langserved - language-engine registry and dispatch service",
	Long: `langserved fronts per-language spell, grammar, and hyphenation
engines behind a uniform REST and GraphQL API, tracking a data directory at
runtime and reconfiguring itself live without restart.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(docsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
