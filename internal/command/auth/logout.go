package auth

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/cyberb/web/internal/auth"
	"github.com/cyberb/web/internal/config"
)

func newLogout(cfg *config.Auth) *cobra.Command {
	logoutCfg := &config.AuthLogout{Auth: cfg}

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out from the console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(logoutCfg, cmd.OutOrStdout())
		},
	}

	return cmd
}

var errAlreadyLoggedOut = errors.New("already logged out")

func runLogout(cfg *config.AuthLogout, out io.Writer) error {
	return logout(out, auth.ResolveSession, []auth.Storage{
		auth.NewKeyringStorage(),
		auth.NewPlainTextStorage(),
	})
}

func logout(out io.Writer, resolve func() (*auth.ResolvedSession, error), storages []auth.Storage) error {
	session, err := resolve()
	if err != nil {
		return fmt.Errorf("could not resolve session: %w", err)
	}
	if session == nil {
		return errAlreadyLoggedOut
	}

	// Delete from every storage so a keyring session does not shadow a
	// stale plain text one, or the other way around.
	var result *multierror.Error
	for _, storage := range storages {
		if err := storage.Delete(); err != nil {
			result = multierror.Append(result,
				fmt.Errorf("deleting %s session: %w", storage.Source(), err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "%s Successfully logged out\n", green("✓"))
	return nil
}
