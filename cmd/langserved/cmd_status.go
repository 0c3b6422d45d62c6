package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusAddr string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running langserved instance's GET /languages and print a styled summary",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://localhost:8080", "base address of a running instance")
}

var (
	statusTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	statusKind  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	statusLang  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f2f2f2"))
	statusEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("#d6dae0")).Italic(true)
)

func runStatus(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(statusAddr + "/languages")
	if err != nil {
		return fmt.Errorf("query %s: %w", statusAddr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var payload struct {
		Available map[string]map[string]string `json:"available"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	fmt.Println(statusTitle.Render(fmt.Sprintf("langserved @ %s", statusAddr)))
	for _, kind := range []string{"speller", "grammar", "hyphenation"} {
		languages, ok := payload.Available[kind]
		fmt.Println(statusKind.Render(kind + ":"))
		if !ok || len(languages) == 0 {
			fmt.Println("  " + statusEmpty.Render("(no languages loaded)"))
			continue
		}
		for lang, title := range languages {
			line := "  " + lang
			if title != "" {
				line += " — " + title
			}
			fmt.Println(statusLang.Render(line))
		}
	}

	return nil
}
