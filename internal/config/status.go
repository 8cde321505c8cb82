package config

import (
	"time"

	"github.com/spf13/cobra"
)

type Status struct {
	*API

	// Flags
	Wait        time.Duration
	WaitTimeout time.Duration
}

func (c *Status) AddFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&c.Wait, "wait", 0, "poll at this interval until the backend reports a known status")
	cmd.Flags().DurationVar(&c.WaitTimeout, "wait-timeout", 3*time.Minute, "give up waiting after this long")
}

type Preferences struct {
	*API
}
