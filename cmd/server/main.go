// Package main implements the bloggy command: the JSON:API blog server and
// the tooling around its database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree. --config applies to every
// subcommand that reads configuration.
func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "bloggy",
		Short: "Bloggy JSON:API blog server",
		Long: `Bloggy serves blog posts, their tags and comments as JSON:API documents.
Configuration comes from bloggy.yaml and BLOGGY_* environment variables.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./bloggy.yaml)")

	rootCmd.AddCommand(newServeCmd(&configFile))
	rootCmd.AddCommand(newMigrateCmd(&configFile))
	rootCmd.AddCommand(newHashPasswordCmd())

	return rootCmd
}
