package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/core/service"
)

type sessionView struct {
	Phase     string                   `json:"phase"`
	Role      domain.Role              `json:"role"`
	User      *domain.UserProfile      `json:"user,omitempty"`
	Dashboard service.DashboardVariant `json:"dashboard,omitempty"`
	Landing   string                   `json:"landing"`
	Nav       []service.NavItem        `json:"nav"`
	Error     string                   `json:"error,omitempty"`
}

func (a *app) sessionView() sessionView {
	s := a.session.Snapshot()
	variant, landing := a.nav.Dashboard()
	v := sessionView{
		Phase:     a.session.Phase().String(),
		Role:      s.Role,
		User:      s.User,
		Dashboard: variant,
		Landing:   landing,
		Nav:       a.nav.Items(),
	}
	if err := a.session.LastError(); err != nil {
		v.Error = err.Error()
	}
	return v
}

func loginCmd(a *app) *cobra.Command {
	var in ports.LoginInput
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password, or complete an OAuth hand-off with --token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if token != "" {
				_, err = a.session.LoginWithToken(ctx, token)
			} else {
				_, err = a.session.Login(ctx, in)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.sessionView())
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token returned by the OAuth sign-in page")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.sessionView())
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current role, profile and navigation",
		RunE: func(cmd *cobra.Command, args []string) error {
			// An unresolved session is still worth showing.
			_ = a.session.Init(cmd.Context())
			if err := a.session.Wait(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.sessionView())
		},
	}
}

func registerCmd(a *app) *cobra.Command {
	var in ports.RegisterInput

	cmd := &cobra.Command{
		Use:       "register client|provider",
		Short:     "Create a client or provider account",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(ports.AccountClient), string(ports.AccountProvider)},
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Kind = ports.AccountKind(args[0])
			profile, err := a.session.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profile)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (at least 8 characters)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&in.CategoryID, "category", "", "Service category id (providers)")
	cmd.Flags().StringVar(&in.City, "city", "", "City (providers)")
	return cmd
}

func oauthURLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "oauth-url client|provider",
		Short:     "Print the hosted sign-in URL; finish with `skillnet login --token`",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(ports.AccountClient), string(ports.AccountProvider)},
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.api.AuthorizeURL(ports.AccountKind(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}
}
