// Package preferences implements `webctl preferences`: a one-shot read of
// the operator's stored console preferences.
package preferences

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cyberb/web/internal/config"
	"github.com/cyberb/web/internal/print"
)

func New(apiConfig *config.API) *cobra.Command {
	cfg := &config.Preferences{API: apiConfig}

	cmd := &cobra.Command{
		Use:   "preferences",
		Short: "Show the operator's console preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreferences(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runPreferences(ctx context.Context, cfg *config.Preferences, out io.Writer) error {
	if err := cfg.InitAPIConfig(); err != nil {
		return err
	}

	prefs, err := cfg.Client.FetchPreferences(ctx)
	if err != nil {
		return err
	}

	switch cfg.OutputFormat {
	case config.OutputFormatDefault:
		tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintf(tw, "Layout:\t%s\n", prefs.Layout)
		fmt.Fprintf(tw, "Language:\t%s\n", prefs.Language)
		return tw.Flush()
	case config.OutputFormatJSON:
		return print.RawJSON(out, prefs)
	case config.OutputFormatYAML:
		return print.RawYAML(out, prefs)
	default:
		return fmt.Errorf("unsupported output format: %q", cfg.OutputFormat)
	}
}
