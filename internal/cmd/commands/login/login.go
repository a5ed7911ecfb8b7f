package login

import (
	"flag"
	"strings"

	"github.com/pkg/browser"

	"github.com/hashicorp-forge/webex-go/internal/cmd/base"
	"github.com/hashicorp-forge/webex-go/pkg/webex"
)

type Command struct {
	*base.Command

	flagClientID    string
	flagRedirectURI string
	flagScopes      string
	flagState       string
	flagBaseURL     string
	flagNoBrowser   bool
}

func (c *Command) Synopsis() string {
	return "Start the OAuth authorization flow for an integration"
}

func (c *Command) Help() string {
	return `Usage: webex login -client-id=<id> -redirect-uri=<uri> [options]

  Builds the authorization URL for an integration and opens it in the
  default browser. The resulting authorization code can be exchanged for
  an access token with the OAuth parameters of webex.Config.

Options:

  -client-id=<id>      (Required) Integration client ID.
  -redirect-uri=<uri>  (Required) Registered redirect URI.
  -scopes=<s1,s2>      Comma-separated scopes. Default: spark:all.
  -state=<state>       Opaque state returned on the redirect.
  -base-url=<url>      API base URL.
  -no-browser          Print the URL instead of opening a browser.`
}

func (c *Command) Run(args []string) int {
	f := flag.NewFlagSet("login", flag.ContinueOnError)
	f.StringVar(&c.flagClientID, "client-id", "", "")
	f.StringVar(&c.flagRedirectURI, "redirect-uri", "", "")
	f.StringVar(&c.flagScopes, "scopes", "spark:all", "")
	f.StringVar(&c.flagState, "state", "", "")
	f.StringVar(&c.flagBaseURL, "base-url", webex.DefaultBaseURL, "")
	f.BoolVar(&c.flagNoBrowser, "no-browser", false, "")
	if err := f.Parse(args); err != nil {
		return 1
	}

	if c.flagClientID == "" || c.flagRedirectURI == "" {
		return c.Exitf("error: -client-id and -redirect-uri are required")
	}

	authURL := webex.AuthorizationURL(
		c.flagBaseURL,
		c.flagClientID,
		c.flagRedirectURI,
		c.flagState,
		strings.Split(c.flagScopes, ","),
	)

	c.UI.Output(authURL)
	if !c.flagNoBrowser {
		if err := browser.OpenURL(authURL); err != nil {
			return c.Exitf("error opening browser: %v", err)
		}
	}
	return 0
}
