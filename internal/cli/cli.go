package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/baaaaaaaka/agent_history/internal/config"
	"github.com/baaaaaaaka/agent_history/internal/report"
	"github.com/baaaaaaaka/agent_history/internal/sessionhistory"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type rootOptions struct {
	configPath string
	agent      string
	limit      int
	format     string
	verbose    bool

	// Overridden in tests.
	env         func() sessionhistory.Environment
	now         func() time.Time
	interactive func() bool
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{
		env:         sessionhistory.CurrentEnvironment,
		now:         time.Now,
		interactive: stdioIsTerminal,
	})
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agent-history",
		Short:         "Browse and search local AI coding assistant session history",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir, or $"+config.EnvConfigPath+")")
	flags.StringVarP(&opts.agent, "agent", "a", config.DefaultProvider, "Provider to query, or 'all'")
	flags.IntVarP(&opts.limit, "limit", "l", config.DefaultLimit, "Maximum results to return")
	flags.StringVarP(&opts.format, "format", "f", string(report.FormatTable), "Output format: table, json or yaml")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log skipped datastores and entries to stderr")

	cmd.AddCommand(
		newListCmd(opts),
		newSearchCmd(opts),
		newAgentsCmd(opts),
		newBrowseCmd(opts),
		newConfigCmd(opts),
	)

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
