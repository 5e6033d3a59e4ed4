package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/service"
)

type searchHit struct {
	domain.SearchResult
	Route string `json:"route"`
}

type searchView struct {
	Query    string      `json:"query"`
	Results  []searchHit `json:"results"`
	Selected string      `json:"selected,omitempty"`
}

func searchCmd(a *app) *cobra.Command {
	var (
		pick  int
		enter bool
	)

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Global search over providers, appointments and shortcuts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Visitors can search too; only a broken backend is fatal.
			if err := a.resolve(cmd.Context()); err != nil {
				return err
			}

			s := service.NewSearcher(
				service.NewBackendSearchSource(a.api, a.api, a.session, a.log),
				a.nav,
				service.SearchConfig{
					Debounce:   a.cfg.Client.SearchDebounce,
					MaxResults: a.cfg.Client.SearchMaxResults,
				},
				a.log,
			)
			defer s.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Client.HTTPTimeout+time.Second)
			defer cancel()

			s.Input(args[0])
			select {
			case <-s.Updates():
			case <-ctx.Done():
				return fmt.Errorf("search %q: %w", args[0], ctx.Err())
			}

			v := searchView{Query: args[0], Results: []searchHit{}}
			for _, r := range s.Results() {
				v.Results = append(v.Results, searchHit{SearchResult: r, Route: a.nav.ResultRoute(r)})
			}
			switch {
			case cmd.Flags().Changed("select"):
				route, ok := s.Select(pick)
				if !ok {
					return fmt.Errorf("no result at position %d", pick)
				}
				v.Selected = route
			case enter:
				v.Selected, _ = s.Key(service.KeyEnter)
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().IntVar(&pick, "select", 0, "Select the result at this position and print its route")
	cmd.Flags().BoolVar(&enter, "enter", false, "Act as if Enter were pressed on the result list")
	return cmd
}
