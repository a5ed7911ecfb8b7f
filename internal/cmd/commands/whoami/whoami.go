package whoami

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/hashicorp-forge/webex-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flags base.ClientFlags
}

func (c *Command) Synopsis() string {
	return "Show the authenticated user"
}

func (c *Command) Help() string {
	return `Usage: webex whoami [options]

  Prints the person record of the authenticated user.

Options:

  -token=<token>     Access token. Defaults to WEBEX_TEAMS_ACCESS_TOKEN.
  -base-url=<url>    API base URL.
  -timeout=<dur>     Per-request timeout.
  -debug             Enable debug logging.`
}

func (c *Command) Run(args []string) int {
	f := flag.NewFlagSet("whoami", flag.ContinueOnError)
	f.StringVar(&c.flags.Token, "token", "", "")
	f.StringVar(&c.flags.BaseURL, "base-url", "", "")
	f.DurationVar(&c.flags.Timeout, "timeout", 0, "")
	f.BoolVar(&c.flags.Debug, "debug", false, "")
	if err := f.Parse(args); err != nil {
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := c.NewClient(ctx, c.flags)
	if err != nil {
		return c.Exitf("error: %v", err)
	}
	defer client.Close()

	me, err := client.People.Me(ctx)
	if err != nil {
		return c.Exitf("error: %v", err)
	}

	c.UI.Output(me.String("displayName"))
	if emails := me.StringSlice("emails"); len(emails) > 0 {
		c.UI.Output(strings.Join(emails, ", "))
	}
	c.UI.Output(me.String("id"))
	return 0
}
