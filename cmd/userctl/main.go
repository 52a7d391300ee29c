package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	flagURL      string
	flagLimit    int
	flagJSON     bool
	flagDebug    bool
	flagLogLevel string
	flagEnvFile  string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "userctl",
		Short: "CLI for managing user records",
		Long:  "A command-line interface for listing, creating, editing and deleting user records through the users REST API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "API server URL (env: USERCTL_URL)")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "Users per page (env: USERCTL_LIMIT)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (env: USERCTL_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Dotenv file loaded before configuration")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "userctl %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newShellCmd())
	rootCmd.AddCommand(newPhotosCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
