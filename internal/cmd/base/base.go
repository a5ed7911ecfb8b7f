package base

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/webex-go/pkg/webex"
)

// Command is embedded by every CLI command: shared UI, logger, and client
// construction from common flags.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// ClientFlags are the connection flags shared by commands that talk to the
// API.
type ClientFlags struct {
	Token   string
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// NewClient builds a client from the flags, falling back to the
// environment token when none was passed.
func (c *Command) NewClient(ctx context.Context, flags ClientFlags) (*webex.Client, error) {
	logger := hclog.NewNullLogger()
	if flags.Debug {
		logger = c.Log
	}
	return webex.New(ctx, &webex.Config{
		AccessToken: flags.Token,
		BaseURL:     flags.BaseURL,
		Timeout:     flags.Timeout,
		Logger:      logger,
	})
}

// Exitf prints an error to the UI and returns a non-zero exit code.
func (c *Command) Exitf(format string, args ...any) int {
	c.UI.Error(fmt.Sprintf(format, args...))
	return 1
}
