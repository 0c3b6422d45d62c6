package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Print the endpoint reference, rendered for the terminal",
	RunE:  runDocs,
}

func runDocs(cmd *cobra.Command, args []string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(88),
	)
	if err != nil {
		return err
	}

	out, err := renderer.Render(endpointReference)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

const endpointReference = `
# langserved endpoints

## REST

- ` + "`POST /speller/{lang}`" + ` — body ` + "`{\"text\": \"...\"}`" + `, returns speller results.
- ` + "`POST /grammar/{lang}`" + ` — body ` + "`{\"text\": \"...\"}`" + `, returns grammar errors.
- ` + "`POST /hyphenation/{lang}`" + ` — body ` + "`{\"text\": \"...\"}`" + `, returns hyphenation parts.
- ` + "`GET /languages`" + ` — lists languages currently loaded per kind.

An unknown ` + "`{lang}`" + ` returns ` + "`404`" + ` with a message of the form
` + "`No speller available for language xx`" + `.

## GraphQL

- ` + "`POST /graphql`" + ` — ` + "`suggestions(text, language) { speller { ... } grammar { ... } hyphenation { ... } }`" + `
- ` + "`GET /graphiql`" + ` — interactive explorer

## Hot reload

Drop a ` + "`<lang>.zhfst`" + `, ` + "`<lang>.zcheck`" + `, or ` + "`<lang>.zhyph`" + ` file into the data
root's ` + "`spelling/`" + `, ` + "`grammar/`" + `, or ` + "`hyphenation/`" + ` subdirectory and it becomes
available within one watcher debounce interval. Removing it unloads the
language the same way.
`
