// Package commands implements the titledex CLI commands.
package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/thesisdesk/titledex/internal/version"
)

var envFlag string

var rootCmd = &cobra.Command{
	Use:     "titledex",
	Short:   "Lexical title-similarity service",
	Version: version.String(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort: a missing .env file is fine.
		_ = godotenv.Load()
		if envFlag != "" {
			_ = os.Setenv("ENV", envFlag)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "config environment (local, prod); defaults to $ENV or local")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(loadCmd)
}
