package config

import "github.com/spf13/cobra"

type Auth struct {
	*API
}

type AuthLogin struct {
	*Auth

	Username    string
	ReturnTo    string
	PlainText   bool
	FakeBackend bool
}

func (c *AuthLogin) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.Username, "username", "u", "", "username for LDAP-mode login")
	cmd.Flags().StringVar(&c.ReturnTo, "return-to", "", "page path to return to after login")
	cmd.Flags().BoolVar(&c.PlainText, "insecure-storage", false, "store the session in a plain text file instead of the keyring")
	cmd.Flags().BoolVar(&c.FakeBackend, "fake-backend", false, "test mode: also write the session cookie marker on login")
	cmd.Flags().MarkHidden("fake-backend")
}

type AuthStatus struct {
	*Auth
}

type AuthLogout struct {
	*Auth
}
