package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/agent_history/internal/config"
	"github.com/baaaaaaaka/agent_history/internal/report"
	"github.com/baaaaaaaka/agent_history/internal/sessionhistory"
)

// session holds everything a command needs once flags and config have been
// reconciled. Building it performs every caller-input check, so a failure
// here happens before any datastore is read.
type session struct {
	cfg      config.Config
	registry *sessionhistory.Registry
	agent    string
	limit    int
	format   report.Format
}

func (o *rootOptions) session(cmd *cobra.Command) (*session, error) {
	store, err := config.NewStore(o.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	agent := o.agent
	if !flags.Changed("agent") {
		agent = cfg.Defaults.Provider
	}
	limit := o.limit
	if !flags.Changed("limit") {
		limit = cfg.Defaults.Limit
	}
	if limit < 1 {
		return nil, fmt.Errorf("--limit must be a positive integer, got %d", limit)
	}
	rawFormat := o.format
	if !flags.Changed("format") {
		rawFormat = cfg.Defaults.Format
	}
	format, err := report.ParseFormat(rawFormat)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Logging.Level, o.verbose)
	registry := sessionhistory.DefaultRegistry(sessionhistory.Options{
		Env:        o.env(),
		Roots:      cfg.RootOverrides(),
		SearchPool: cfg.Defaults.SearchPool,
		Extractor: sessionhistory.Extractor{
			Location: o.now().Location(),
			Logger:   logger,
		},
	})

	return &session{
		cfg:      cfg,
		registry: registry,
		agent:    agent,
		limit:    limit,
		format:   format,
	}, nil
}

func newListCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
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
			records, err := listAll(providers, s.limit)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), s.format, records, root.now())
		},
	}
	return cmd
}

// listAll lists every provider and merges the results.
func listAll(providers []sessionhistory.Provider, limit int) ([]sessionhistory.Record, error) {
	var results [][]sessionhistory.Record
	for _, p := range providers {
		records, err := p.List(limit)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		results = append(results, records)
	}
	return sessionhistory.Combine(results, limit), nil
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search sessions by title, workspace or subtitle",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := query
			if strings.TrimSpace(q) == "" {
				q = strings.Join(args, " ")
			}
			s, err := root.session(cmd)
			if err != nil {
				return err
			}
			providers, err := s.registry.Select(s.agent)
			if err != nil {
				return err
			}
			if strings.TrimSpace(q) == "" {
				return errors.New("--query required for search")
			}
			var results [][]sessionhistory.Record
			for _, p := range providers {
				records, err := p.Search(q, s.limit)
				if err != nil {
					return fmt.Errorf("%s: %w", p.Name(), err)
				}
				results = append(results, records)
			}
			combined := sessionhistory.Combine(results, s.limit)
			return report.Write(cmd.OutOrStdout(), s.format, combined, root.now())
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query (may also be given as arguments)")
	return cmd
}

func newAgentsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Show known providers and where their data was found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.session(cmd)
			if err != nil {
				return err
			}
			var infos []sessionhistory.ProviderInfo
			for _, p := range s.registry.Providers() {
				infos = append(infos, sessionhistory.Describe(p))
			}
			return report.WriteProviders(cmd.OutOrStdout(), s.format, infos)
		},
	}
	return cmd
}
