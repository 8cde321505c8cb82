// Package dashboard implements `webctl dashboard`: the live terminal view of
// the authenticated console. The shared-value providers poll the backend and
// the bubbletea view re-renders on every published transition.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/docker/go-units"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cyberb/web/internal/api"
	"github.com/cyberb/web/internal/auth"
	"github.com/cyberb/web/internal/config"
	"github.com/cyberb/web/internal/shared"
	"github.com/cyberb/web/internal/tui"
)

func New(apiConfig *config.API) *cobra.Command {
	cfg := &config.Dashboard{API: apiConfig}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Watch live service status and preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), cfg)
		},
	}
	cfg.AddFlags(cmd)

	return cmd
}

func runDashboard(ctx context.Context, cfg *config.Dashboard) error {
	if err := cfg.InitAPIConfig(); err != nil {
		return err
	}

	// The dashboard sits behind the login surface.
	session, err := auth.ResolveSession()
	if err != nil {
		return err
	}
	if !auth.IsAuthenticated(session) {
		return errors.New("not authenticated, run 'webctl auth login' first")
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shell := shared.NewShell(ctx, cfg.Client, shared.ShellOptions{
		StatusInterval:      cfg.StatusInterval,
		PreferencesInterval: cfg.PreferencesInterval,
		Log:                 log,
	})
	defer shell.Stop()

	view := tui.NewDashboardView(shell.Refresh)
	program := tea.NewProgram(view, tea.WithAltScreen())

	// Forward every published transition into the view.
	unsubStatus := shell.Status.Subscribe(func(v shared.Value[api.ServiceStatus]) {
		program.Send(tui.StatusMsg(v))
	})
	defer unsubStatus()
	unsubPrefs := shell.Preferences.Subscribe(func(v shared.Value[api.Preferences]) {
		program.Send(tui.PrefsMsg(v))
	})
	defer unsubPrefs()

	var group run.Group
	group.Add(func() error {
		_, err := program.Run()
		return err
	}, func(error) {
		program.Quit()
	})
	group.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	log.Debug("dashboard starting", "server", cfg.ServerURL)
	err = group.Run()
	var signalErr run.SignalError
	if errors.As(err, &signalErr) {
		return nil
	}
	return err
}

func newLogger(cfg *config.Dashboard) (*slog.Logger, error) {
	// The dashboard owns the terminal, so logs go to a rotated file or
	// nowhere at all.
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		maxSize, err := units.FromHumanSize(cfg.LogMaxSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-max-size: %w", err)
		}
		w = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    int(maxSize / units.MB),
			MaxBackups: 3,
		}
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
