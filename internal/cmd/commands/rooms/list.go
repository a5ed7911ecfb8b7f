package rooms

import (
	"context"
	"flag"
	"time"

	"github.com/hashicorp-forge/webex-go/internal/cmd/base"
	"github.com/hashicorp-forge/webex-go/pkg/webex"
)

type ListCommand struct {
	*base.Command

	flags    base.ClientFlags
	flagType string
	flagMax  int
}

func (c *ListCommand) Synopsis() string {
	return "List rooms the authenticated user belongs to"
}

func (c *ListCommand) Help() string {
	return `Usage: webex rooms list [options]

  Lists rooms, one per line: id, type, title.

Options:

  -type=<direct|group>  Filter by room type.
  -max=<n>              Page size hint.
  -token=<token>        Access token. Defaults to WEBEX_TEAMS_ACCESS_TOKEN.
  -base-url=<url>       API base URL.
  -debug                Enable debug logging.`
}

func (c *ListCommand) Run(args []string) int {
	f := flag.NewFlagSet("rooms list", flag.ContinueOnError)
	f.StringVar(&c.flags.Token, "token", "", "")
	f.StringVar(&c.flags.BaseURL, "base-url", "", "")
	f.BoolVar(&c.flags.Debug, "debug", false, "")
	f.StringVar(&c.flagType, "type", "", "")
	f.IntVar(&c.flagMax, "max", 0, "")
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

	rooms := client.Rooms.List(ctx, webex.RoomsListOptions{Type: c.flagType, Max: c.flagMax})
	for rooms.Next() {
		room := rooms.Record()
		c.UI.Output(room.String("id") + "\t" + room.String("type") + "\t" + room.String("title"))
	}
	if err := rooms.Err(); err != nil {
		return c.Exitf("error: %v", err)
	}
	return 0
}
