package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/pkg/validation"
)

func categoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List service categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.api.Categories(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cats)
		},
	}
}

func providersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Browse and manage service providers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := a.api.Providers(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ps)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.Provider(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <text>",
		Short: "Search providers by name, category or city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := a.api.SearchProviders(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ps)
		},
	})

	cmd.AddCommand(providerUpdateCmd(a))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a provider (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.resolve(cmd.Context()); err != nil {
				return err
			}
			if a.session.Role() != domain.RoleAdmin {
				return domain.ErrForbidden
			}
			return a.api.DeleteProvider(cmd.Context(), args[0])
		},
	})

	return cmd
}

func providerUpdateCmd(a *app) *cobra.Command {
	var (
		name, phone, description, city, category string
		rate                                     float64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a provider profile; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch domain.ProviderPatch
			if f.Changed("name") {
				patch.Name = &name
			}
			if f.Changed("phone") {
				patch.Phone = &phone
			}
			if f.Changed("description") {
				patch.Description = &description
			}
			if f.Changed("city") {
				patch.City = &city
			}
			if f.Changed("category") {
				patch.CategoryID = &category
			}
			if f.Changed("hourly-rate") {
				patch.HourlyRate = &rate
			}
			if patch.Empty() {
				return errors.New("nothing to update: pass at least one field flag")
			}
			if err := validation.Struct(patch); err != nil {
				return err
			}

			if err := a.resolve(cmd.Context()); err != nil {
				return err
			}
			role := a.session.Role()
			if role != domain.RoleProvider && role != domain.RoleAdmin {
				return domain.ErrForbidden
			}

			p, err := a.api.UpdateProvider(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&description, "description", "", "Profile description")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().StringVar(&category, "category", "", "Service category id")
	cmd.Flags().Float64Var(&rate, "hourly-rate", 0, "Hourly rate")
	return cmd
}
