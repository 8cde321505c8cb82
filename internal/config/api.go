package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/cyberb/web/internal/api"
	"github.com/cyberb/web/internal/buildinfo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

type API struct {
	Root

	// Config file values
	ServerURL string

	// Runtime values
	Client *api.Client `json:"-"`
}

// for error reporting, we select the config that
// the user controls.
func (a *API) MarshalJSON() ([]byte, error) {
	return a.marshal(json.Marshal)
}

func (a *API) MarshalYAML() ([]byte, error) {
	return a.marshal(yaml.Marshal)
}

func (a *API) marshal(marshaller func(interface{}) ([]byte, error)) ([]byte, error) {
	type T struct {
		Debug      bool
		ConfigFile string
		ServerURL  string
	}
	t := &T{
		Debug:      a.Debug,
		ConfigFile: a.ConfigFile,
		ServerURL:  a.ServerURL,
	}
	return marshaller(t)
}

func (a *API) InitAPIConfig() error {
	serverURL := viper.GetString("server_url")
	if serverURL == "" {
		return errors.New("Console server URL must be specified through either the WEBCONSOLE_SERVER_URL env var or the 'server_url' field in ~/.webconsole/config.yaml")
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return fmt.Errorf("invalid server_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url scheme %q, expecting http or https", u.Scheme)
	}
	a.ServerURL = serverURL

	a.Client = api.NewClient(a.ServerURL,
		api.WithUserAgent(fmt.Sprintf("webctl:%s", buildinfo.Version)))
	return nil
}
