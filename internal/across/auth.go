package across

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// GCNTokenURL issues client-credential tokens for ACROSS.
const GCNTokenURL = "https://auth.gcn.nasa.gov/oauth2/token"

type clientCredentials struct {
	config clientcredentials.Config
}

// WithClientCredentials authenticates every request with an OAuth2 bearer
// token obtained through the client-credentials grant.
func WithClientCredentials(clientID, clientSecret string, scopes ...string) Option {
	return func(c *Client) {
		if c.creds == nil {
			c.creds = &clientCredentials{config: clientcredentials.Config{TokenURL: GCNTokenURL}}
		}
		c.creds.config.ClientID = clientID
		c.creds.config.ClientSecret = clientSecret
		c.creds.config.Scopes = scopes
	}
}

// WithTokenURL overrides the token endpoint used by WithClientCredentials.
func WithTokenURL(u string) Option {
	return func(c *Client) {
		if c.creds == nil {
			c.creds = &clientCredentials{}
		}
		c.creds.config.TokenURL = u
	}
}

// wrap returns a client that adds bearer tokens to base's requests. Token
// requests themselves go through base.
func (cc *clientCredentials) wrap(base *http.Client) *http.Client {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: cc.config.TokenSource(ctx),
			Base:   transport,
		},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}
}
