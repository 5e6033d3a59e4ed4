// Command skillnet is the command-line client for the SkillNet marketplace API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var a app

	rootCmd := &cobra.Command{
		Use:           "skillnet",
		Short:         "SkillNet marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.flags.apiURL, "api-url", "", "Backend base URL (overrides SKILLNET_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.pretty, "pretty", false, "Human-friendly log output on stderr")

	rootCmd.AddCommand(loginCmd(&a))
	rootCmd.AddCommand(logoutCmd(&a))
	rootCmd.AddCommand(whoamiCmd(&a))
	rootCmd.AddCommand(registerCmd(&a))
	rootCmd.AddCommand(oauthURLCmd(&a))
	rootCmd.AddCommand(categoriesCmd(&a))
	rootCmd.AddCommand(providersCmd(&a))
	rootCmd.AddCommand(appointmentsCmd(&a))
	rootCmd.AddCommand(searchCmd(&a))
	rootCmd.AddCommand(adminCmd(&a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		a.close()
		os.Exit(1)
	}
}
