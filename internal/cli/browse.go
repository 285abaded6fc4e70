package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/agent_history/internal/report"
	"github.com/baaaaaaaka/agent_history/internal/sessionhistory"
	"github.com/baaaaaaaka/agent_history/internal/tui"
)

var errNotInteractive = errors.New("browse needs an interactive terminal; use list or search instead")

func newBrowseCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse sessions in a terminal UI and print the one you pick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.session(cmd)
			if err != nil {
				return err
			}
			providers, err := s.registry.Select(s.agent)
			if err != nil {
				return err
			}
			if !root.interactive() {
				return errNotInteractive
			}

			// Without an explicit --limit the browser gets the whole search pool.
			limit := s.cfg.Defaults.SearchPool
			if cmd.Flags().Changed("limit") {
				limit = s.limit
			}
			selection, err := tui.SelectRecord(cmd.Context(), tui.Options{
				LoadRecords: func(context.Context) ([]sessionhistory.Record, error) {
					return listAll(providers, limit)
				},
				Version:  version,
				Location: root.now().Location(),
			})
			if err != nil || selection == nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), s.format, []sessionhistory.Record{selection.Record}, root.now())
		},
	}
	return cmd
}
