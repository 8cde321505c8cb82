package auth

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xeonx/timeago"

	"github.com/cyberb/web/internal/auth"
	"github.com/cyberb/web/internal/config"
	"github.com/cyberb/web/internal/print"
)

func newStatus(cfg *config.Auth) *cobra.Command {
	statusCfg := &config.AuthStatus{Auth: cfg}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(statusCfg, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runStatus(cfg *config.AuthStatus, out io.Writer) error {
	session, err := auth.ResolveSession()
	if err != nil {
		return fmt.Errorf("could not resolve session: %w", err)
	}

	switch cfg.OutputFormat {
	case config.OutputFormatDefault:
		return printSession(out, session)
	case config.OutputFormatJSON:
		return print.RawJSON(out, session)
	case config.OutputFormatYAML:
		return print.RawYAML(out, session)
	default:
		return fmt.Errorf("unsupported output format: %q", cfg.OutputFormat)
	}
}

func printSession(out io.Writer, session *auth.ResolvedSession) error {
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	if session == nil || !session.Authenticated {
		fmt.Fprintln(tw, "Status:\tNot authenticated")
		return tw.Flush()
	}

	status := "Authenticated"
	if session.Source == auth.PlainTextSessionSource {
		status += " (via plain text file)"
	}
	fmt.Fprintf(tw, "Status:\t%s\n", status)

	if session.Mode != "" {
		fmt.Fprintf(tw, "Auth mode:\t%s\n", session.Mode)
	}
	if session.Username != "" {
		fmt.Fprintf(tw, "Username:\t%s\n", session.Username)
	}
	if session.ServerURL != "" {
		fmt.Fprintf(tw, "Server:\t%s\n", session.ServerURL)
	}
	if session.LoginAt != nil {
		fmt.Fprintf(tw, "Logged in:\t%s\n",
			timeago.NoMax(timeago.English).Format(*session.LoginAt))
	}

	return tw.Flush()
}
