package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "concord",
	Short: "Concord is a Discord management server for AI agents",
	Long: `Concord exposes Discord server management as schema-described tools
over the Model Context Protocol (MCP): channels, messages, roles,
members and moderation, all behind a single authenticated session.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}
