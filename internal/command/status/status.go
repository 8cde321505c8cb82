// Package status implements `webctl status`: a one-shot read of the backend
// service status, optionally waiting until the backend reports a known one.
package status

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Masterminds/semver"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cyberb/web/internal/api"
	"github.com/cyberb/web/internal/config"
	"github.com/cyberb/web/internal/poll"
	"github.com/cyberb/web/internal/print"
	"github.com/cyberb/web/internal/spinner"
)

// minBackendVersion is the oldest backend this client is known to work
// against. Older backends still get a best-effort answer plus a warning.
const minBackendVersion = "1.2.0"

func New(apiConfig *config.API) *cobra.Command {
	cfg := &config.Status{API: apiConfig}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the backend service status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	cfg.AddFlags(cmd)

	return cmd
}

type statusReport struct {
	Status  api.ServiceStatus `json:"status"`
	Version string            `json:"version,omitempty"`
}

func runStatus(ctx context.Context, cfg *config.Status, out io.Writer) error {
	if err := cfg.InitAPIConfig(); err != nil {
		return err
	}

	status, err := fetchStatus(ctx, cfg, out)
	if err != nil {
		return err
	}

	report := statusReport{Status: status}
	if info, err := cfg.Client.Version(ctx); err == nil {
		report.Version = info.Version
	}

	switch cfg.OutputFormat {
	case config.OutputFormatDefault:
		return printReport(out, report)
	case config.OutputFormatJSON:
		return print.RawJSON(out, report)
	case config.OutputFormatYAML:
		return print.RawYAML(out, report)
	default:
		return fmt.Errorf("unsupported output format: %q", cfg.OutputFormat)
	}
}

func fetchStatus(ctx context.Context, cfg *config.Status, out io.Writer) (api.ServiceStatus, error) {
	if cfg.Wait <= 0 {
		return cfg.Client.FetchStatus(ctx)
	}

	spin := spinner.Start(out, "Waiting for backend")
	defer spin.Stop()

	var status api.ServiceStatus
	err := poll.NewPoll().
		WithDelay(cfg.Wait).
		WithTimeout(cfg.WaitTimeout).
		Until(ctx, func(ctx context.Context) (bool, error) {
			s, err := cfg.Client.FetchStatus(ctx)
			if err != nil {
				// The backend may simply not be up yet; keep waiting.
				spin.Messagef("unreachable: %v", err)
				return false, nil
			}
			spin.Message(string(s))
			if s == api.StatusUnknown {
				return false, nil
			}
			status = s
			return true, nil
		})
	if err != nil {
		spin.StopFail()
		return "", err
	}
	return status, nil
}

func printReport(out io.Writer, report statusReport) error {
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Status:\t%s\n", report.Status)
	if report.Version != "" {
		fmt.Fprintf(tw, "Backend version:\t%s\n", report.Version)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if warn := versionWarning(report.Version); warn != "" {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(out, "%s %s\n", yellow("!"), warn)
	}
	return nil
}

// versionWarning returns an advisory when the backend is older than this
// client supports. Unparseable versions are ignored rather than warned
// about; the advisory is best effort.
func versionWarning(version string) string {
	if version == "" {
		return ""
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return ""
	}
	min := semver.MustParse(minBackendVersion)
	if v.LessThan(min) {
		return fmt.Sprintf("backend %s is older than the oldest supported version %s; consider upgrading", version, minBackendVersion)
	}
	return ""
}
