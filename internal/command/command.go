package command

import (
	"fmt"

	"github.com/cyberb/web/internal/buildinfo"
	"github.com/cyberb/web/internal/command/auth"
	"github.com/cyberb/web/internal/command/dashboard"
	"github.com/cyberb/web/internal/command/preferences"
	"github.com/cyberb/web/internal/command/status"
	"github.com/cyberb/web/internal/config"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	cfg := &config.API{}
	cobra.OnInitialize(cfg.Init)

	cmd := &cobra.Command{
		Use:     "webctl",
		Short:   "Command-line client for the web admin console",
		Version: fmt.Sprintf("%v (%v) - %v", buildinfo.Version, buildinfo.GitCommit, buildinfo.BuildDate),

		// Don't print usage info automatically when errors occur.
		// Most of the time, the errors are not related to usage.
		SilenceUsage: true,
	}
	cfg.AddFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		auth.New(cfg),
		status.New(cfg),
		preferences.New(cfg),
		dashboard.New(cfg),
	)

	return cmd
}
