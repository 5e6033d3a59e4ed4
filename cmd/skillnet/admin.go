package main

import (
	"github.com/spf13/cobra"
)

func adminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show platform metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.api.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m)
		},
	})
	return cmd
}
