package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/concord/internal/adapters/discord"
	"github.com/aretw0/concord/internal/logging"
	"github.com/aretw0/concord/internal/presentation/tui"
	"github.com/aretw0/concord/pkg/registry"
)

// toolsCmd prints the tool catalog: every registered operation with its
// parameter schema, rendered as markdown in the terminal.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools Concord exposes over MCP",
	Run: func(cmd *cobra.Command, args []string) {
		reg := registry.New()
		if err := discord.New(logging.NewNop()).RegisterAll(reg); err != nil {
			fmt.Fprintf(os.Stderr, "Error building tool catalog: %v\n", err)
			os.Exit(1)
		}

		plain, _ := cmd.Flags().GetBool("plain")
		md := catalogMarkdown(reg)
		if plain {
			fmt.Print(md)
			return
		}

		tui.PrintBanner()
		render := tui.NewRenderer()
		out, err := render(md)
		if err != nil {
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	},
}

func catalogMarkdown(reg *registry.Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Concord Tools (%d)\n\n", reg.Len())
	for _, spec := range reg.Specs() {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", spec.Name, spec.Description)
		if len(spec.Params) == 0 {
			b.WriteString("_No parameters._\n\n")
			continue
		}
		b.WriteString("| Parameter | Type | Required | Description |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, f := range spec.Params {
			required := "no"
			if f.Required {
				required = "yes"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.Name, f.Type.Name(), required, f.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.Flags().Bool("plain", false, "Print raw markdown without terminal rendering")
}
