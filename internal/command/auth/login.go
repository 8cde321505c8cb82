package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cyberb/web/internal/api"
	"github.com/cyberb/web/internal/auth"
	"github.com/cyberb/web/internal/config"
	"github.com/cyberb/web/internal/session"
	"github.com/cyberb/web/internal/spinner"
)

func newLogin(cfg *config.Auth) *cobra.Command {
	loginCfg := &config.AuthLogin{Auth: cfg}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), loginCfg, cmd.OutOrStdout(), cmd.InOrStdin())
		},
	}
	loginCfg.AddFlags(cmd)

	return cmd
}

// consoleNavigator is the CLI stand-in for browser navigation: it records
// the originally requested page and announces where a successful login would
// land.
type consoleNavigator struct {
	out       io.Writer
	requested string
}

func (n *consoleNavigator) Redirect(path string) {
	if title, ok := session.PageTitle(path); ok {
		fmt.Fprintf(n.out, "You are now at %s (%s)\n", title, path)
		return
	}
	fmt.Fprintf(n.out, "You are now at %s\n", path)
}

func (n *consoleNavigator) RequestedPath() string {
	return n.requested
}

func runLogin(ctx context.Context, cfg *config.AuthLogin, out io.Writer, in io.Reader) error {
	if err := cfg.InitAPIConfig(); err != nil {
		return err
	}

	var storage auth.Storage = auth.NewKeyringStorage()
	if cfg.PlainText {
		storage = auth.NewPlainTextStorage()
	}
	storeOpts := []auth.SessionStoreOption{
		auth.WithSessionDetails("", "", cfg.ServerURL),
	}
	if cfg.FakeBackend {
		storeOpts = append(storeOpts, auth.WithFakeBackend())
	}
	store := auth.NewSessionStore(storage, storeOpts...)

	nav := &consoleNavigator{out: out, requested: cfg.ReturnTo}
	ctrl := session.NewController(cfg.Client, nav, store,
		session.WithLogger(newLogger(cfg.Debug)),
		session.WithCookieCheck(func() bool {
			// The CLI analog of persistent-cookie support: can the chosen
			// storage be read at all? A broken keyring means the session
			// will not survive this process.
			_, err := storage.Get()
			return err == nil
		}))

	spin := spinner.Start(out, "Detecting auth mode")
	if err := ctrl.Start(ctx); err != nil {
		spin.StopFail()
		return err
	}
	spin.Messagef("%s mode", ctrl.Mode())
	spin.Stop()

	if ctrl.Phase() == session.PhaseAuthenticated {
		fmt.Fprintln(out, "Already logged in.")
		return nil
	}
	if ctrl.CookieWarning() {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(out, "%s Session storage is unavailable; this login may not persist.\n", yellow("!"))
	}
	if path := nav.RequestedPath(); path != "" {
		if title, ok := session.PageTitle(path); ok {
			fmt.Fprintf(out, "After login you will be returned to %s.\n", title)
		}
	}

	// One reader for all prompts: a fresh bufio.Reader per prompt would
	// buffer past the username line and lose the password on piped input.
	reader := bufio.NewReader(in)

	username := cfg.Username
	if ctrl.UsernameRequired() && username == "" {
		var err error
		username, err = promptLine(out, reader, "Username: ")
		if err != nil {
			return err
		}
	}
	password, err := promptPassword(out, in, reader)
	if err != nil {
		return err
	}

	ctrl.SetUsername(username)
	ctrl.SetPassword(password)
	store.Describe(string(ctrl.Mode()), username)

	spin = spinner.Start(out, "Authenticating")
	if err := ctrl.Submit(ctx); err != nil {
		spin.StopFail()
		if api.IsAuthRejected(err) {
			return fmt.Errorf("invalid credentials: %w", err)
		}
		return err
	}
	spin.Stop()

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "%s Successfully logged in\n", green("✓"))
	return nil
}

// newLogger builds the login flow's logger: stderr, debug level behind
// --debug, so the controller's probe diagnostics are observable without
// disturbing the spinner on stdout.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func promptLine(out io.Writer, reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(out io.Writer, in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	// Not a terminal; read a line so the password can be piped in.
	return promptLine(out, reader, "Password: ")
}
