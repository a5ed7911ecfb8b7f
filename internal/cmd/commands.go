package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/webex-go/internal/cmd/base"
	"github.com/hashicorp-forge/webex-go/internal/cmd/commands/login"
	"github.com/hashicorp-forge/webex-go/internal/cmd/commands/messages"
	"github.com/hashicorp-forge/webex-go/internal/cmd/commands/rooms"
	"github.com/hashicorp-forge/webex-go/internal/cmd/commands/whoami"
)

// Commands maps subcommand names to their factories.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{Log: log, UI: ui}

	Commands = map[string]cli.CommandFactory{
		"whoami": func() (cli.Command, error) {
			return &whoami.Command{Command: b}, nil
		},
		"rooms list": func() (cli.Command, error) {
			return &rooms.ListCommand{Command: b}, nil
		},
		"messages send": func() (cli.Command, error) {
			return &messages.SendCommand{Command: b}, nil
		},
		"login": func() (cli.Command, error) {
			return &login.Command{Command: b}, nil
		},
	}
}
