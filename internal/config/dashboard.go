package config

import (
	"time"

	"github.com/spf13/cobra"
)

type Dashboard struct {
	*API

	// Flags
	StatusInterval      time.Duration
	PreferencesInterval time.Duration
	LogFile             string
	LogMaxSize          string
}

func (c *Dashboard) AddFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&c.StatusInterval, "status-interval", 10*time.Second, "service status refresh interval")
	cmd.Flags().DurationVar(&c.PreferencesInterval, "preferences-interval", time.Minute, "preferences refresh interval")
	cmd.Flags().StringVar(&c.LogFile, "log-file", "", "write debug logs to this file (rotated), since the dashboard owns the terminal")
	cmd.Flags().StringVar(&c.LogMaxSize, "log-max-size", "10MB", "rotate the log file when it exceeds this size")
}
