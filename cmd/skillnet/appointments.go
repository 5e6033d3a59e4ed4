package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/infrastructure/queue"
)

type outcomeView struct {
	queue.Outcome
	Error string `json:"error,omitempty"`
}

type slotsView struct {
	ProviderID string   `json:"provider_id"`
	Date       string   `json:"date"`
	Free       []string `json:"free"`
}

func appointmentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appt"},
		Short:   "List, book and move appointments through their lifecycle",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the appointments visible to the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadBoard(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.board.Items())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appt, err := a.api.Appointment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), appt)
		},
	})

	cmd.AddCommand(bookCmd(a))
	cmd.AddCommand(slotsCmd(a))
	cmd.AddCommand(transitionCmd(a))
	cmd.AddCommand(applyCmd(a))
	return cmd
}

// loadBoard resolves the session and fetches the appointment list.
func (a *app) loadBoard(ctx context.Context) error {
	if err := a.resolve(ctx); err != nil {
		return err
	}
	if !a.session.Role().Authenticated() {
		return domain.ErrNotAuthenticated
	}
	return a.board.Load(ctx)
}

func bookCmd(a *app) *cobra.Command {
	var in ports.BookingInput

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a slot with a provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.resolve(cmd.Context()); err != nil {
				return err
			}
			appt, err := a.board.Book(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), appt)
		},
	}
	cmd.Flags().StringVar(&in.ProviderID, "provider", "", "Provider id")
	cmd.Flags().StringVar(&in.CategoryID, "category", "", "Service category id")
	cmd.Flags().StringVar(&in.Date, "date", "", "Date, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Hour, "hour", "", "Start hour, HH:MM")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes for the provider")
	return cmd
}

func slotsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slots <provider-id> <date>",
		Short: "Show the free hours of a provider on a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			free, err := a.board.FreeSlots(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), slotsView{ProviderID: args[0], Date: args[1], Free: free})
		},
	}
}

func transitionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transition <id> <status>",
		Short: "Move an appointment to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseAppointmentStatus(args[1])
			if err != nil {
				return err
			}
			if err := a.loadBoard(cmd.Context()); err != nil {
				return err
			}
			res, err := a.board.Transition(cmd.Context(), ports.TransitionCommand{ID: args[0], Target: status})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func applyCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a JSON array of {\"id\",\"status\"} transitions",
		Long: "Apply reads transition commands from --file (or stdin with -) and runs them\n" +
			"concurrently. Commands for the same appointment run in file order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := readCommands(cmd, file)
			if err != nil {
				return err
			}
			if err := a.loadBoard(cmd.Context()); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			d := queue.NewDispatcher(a.cfg.Client.TransitionWorkers, a.board, a.log)
			d.Start(ctx)

			outcomes, err := d.Apply(ctx, cmds)
			if err != nil {
				return err
			}

			views := make([]outcomeView, len(outcomes))
			failed := 0
			for i, o := range outcomes {
				views[i] = outcomeView{Outcome: o}
				if o.Err != nil {
					views[i].Error = o.Err.Error()
					failed++
				}
			}
			if err := printJSON(cmd.OutOrStdout(), views); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d transitions failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file with transition commands, - for stdin")
	return cmd
}

func readCommands(cmd *cobra.Command, file string) ([]ports.TransitionCommand, error) {
	r := cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var cmds []ports.TransitionCommand
	if err := json.NewDecoder(r).Decode(&cmds); err != nil {
		return nil, fmt.Errorf("decode transition commands: %w", err)
	}
	for i, c := range cmds {
		if c.ID == "" || !c.Target.Valid() {
			return nil, fmt.Errorf("command %d: id and a known status are required", i)
		}
	}
	return cmds, nil
}
