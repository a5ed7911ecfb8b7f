package messages

import (
	"context"
	"flag"
	"time"

	"github.com/hashicorp-forge/webex-go/internal/cmd/base"
	"github.com/hashicorp-forge/webex-go/pkg/webex"
)

type SendCommand struct {
	*base.Command

	flags        base.ClientFlags
	flagRoomID   string
	flagToEmail  string
	flagText     string
	flagMarkdown string
	flagFile     string
}

func (c *SendCommand) Synopsis() string {
	return "Send a message to a room or person"
}

func (c *SendCommand) Help() string {
	return `Usage: webex messages send [options]

  Sends a message. Specify exactly one destination: -room-id or -to-email.
  A local file given with -file is uploaded as an attachment.

Options:

  -room-id=<id>       Destination room.
  -to-email=<email>   Destination person, by email.
  -text=<text>        Plain-text body.
  -markdown=<md>      Markdown body.
  -file=<path>        Local file to attach.
  -token=<token>      Access token. Defaults to WEBEX_TEAMS_ACCESS_TOKEN.
  -base-url=<url>     API base URL.
  -debug              Enable debug logging.`
}

func (c *SendCommand) Run(args []string) int {
	f := flag.NewFlagSet("messages send", flag.ContinueOnError)
	f.StringVar(&c.flags.Token, "token", "", "")
	f.StringVar(&c.flags.BaseURL, "base-url", "", "")
	f.BoolVar(&c.flags.Debug, "debug", false, "")
	f.StringVar(&c.flagRoomID, "room-id", "", "")
	f.StringVar(&c.flagToEmail, "to-email", "", "")
	f.StringVar(&c.flagText, "text", "", "")
	f.StringVar(&c.flagMarkdown, "markdown", "", "")
	f.StringVar(&c.flagFile, "file", "", "")
	if err := f.Parse(args); err != nil {
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := c.NewClient(ctx, c.flags)
	if err != nil {
		return c.Exitf("error: %v", err)
	}
	defer client.Close()

	msg, err := client.Messages.Create(ctx, webex.MessageFields{
		RoomID:        c.flagRoomID,
		ToPersonEmail: c.flagToEmail,
		Text:          c.flagText,
		Markdown:      c.flagMarkdown,
		LocalFile:     c.flagFile,
	})
	if err != nil {
		return c.Exitf("error: %v", err)
	}

	c.UI.Output(msg.String("id"))
	return 0
}
