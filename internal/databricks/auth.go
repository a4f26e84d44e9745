package databricks

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/bobmcallan/databricks-mcp/internal/config"
)

// oauthScope is the scope Databricks requires for workspace-level M2M tokens.
const oauthScope = "all-apis"

// newHTTPClient returns an http.Client that authenticates every request.
// OAuth client credentials take precedence over a personal access token.
// With neither configured, requests are sent unauthenticated.
func newHTTPClient(cfg config.DatabricksConfig) *http.Client {
	base := &http.Client{Timeout: cfg.GetTimeout()}

	var src oauth2.TokenSource
	switch {
	case cfg.UsesOAuth():
		// Token fetches go through base so they share the request timeout.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.BaseURL() + "/oidc/v1/token",
			Scopes:       []string{oauthScope},
		}
		src = cc.TokenSource(ctx)
	case cfg.Token != "":
		src = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
	default:
		return base
	}

	return &http.Client{
		Timeout: base.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, src),
			Base:   base.Transport,
		},
	}
}
