// Package config holds the flag and config-file surface of webctl. Each
// command owns a config struct embedding its parent's, with flags bound over
// viper so every value can also come from the config file or environment.
package config

import (
	"fmt"

	"github.com/cyberb/web/internal/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Root struct {
	// Flags
	ConfigFile   string
	OutputFormat OutputFormat
	Debug        bool
}

func (c *Root) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&c.ConfigFile, "config", "", "config file (default is $HOME/.webconsole/config.yaml)")
	cmd.PersistentFlags().VarP(&c.OutputFormat, "output", "o", "output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&c.Debug, "debug", false, "enable debug logging")
}

func (c *Root) Init() {
	cobra.CheckErr(c.init())
}

func (c *Root) init() error {
	if c.ConfigFile != "" {
		viper.SetConfigFile(c.ConfigFile)
	} else {
		clientDir, err := auth.ClientDir()
		if err != nil {
			return err
		}

		viper.AddConfigPath(clientDir)
		viper.SetConfigName("config") // Doesn't include extension.
		viper.SetConfigType("yaml")   // File name will be "config.yaml".
	}

	viper.SetEnvPrefix("webconsole")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional since the required server URL can be
		// set by env var instead.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

type OutputFormat string

const (
	OutputFormatDefault OutputFormat = ""
	OutputFormatYAML    OutputFormat = "yaml"
	OutputFormatJSON    OutputFormat = "json"
)

func (o *OutputFormat) String() string {
	return string(*o)
}

// Set implements the pflag.Value interface.
func (o *OutputFormat) Set(v string) error {
	switch OutputFormat(v) {
	case OutputFormatDefault, OutputFormatYAML, OutputFormatJSON:
		*o = OutputFormat(v)
	default:
		return fmt.Errorf("unknown output format: %v", v)
	}
	return nil
}

// Type implements the pflag.Value interface.
func (o *OutputFormat) Type() string {
	return "string"
}
