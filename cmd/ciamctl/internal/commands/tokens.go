package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wolfeidau/ciamctl/internal/audit"
	"github.com/wolfeidau/ciamctl/internal/auth"
	"github.com/wolfeidau/ciamctl/internal/config"
)

// TokensCmd manages authentication tokens.
type TokensCmd struct {
	View TokensViewCmd `cmd:"" help:"View current tokens (unmasked)"`
}

// TokensViewCmd fetches and displays a token for each credential kind.
// Failures per kind are reported independently.
type TokensViewCmd struct{}

func (c *TokensViewCmd) Run(ctx context.Context, globals *Globals) error {
	cfgStore, err := config.NewStore("")
	if err != nil {
		return err
	}

	region, env, err := cfgStore.RequireRegionEnv()
	if err != nil {
		return err
	}

	tokens := auth.NewManager(audit.New(globals.Verbose))

	opStart("view tokens")

	for _, kind := range auth.Kinds() {
		step(fmt.Sprintf("Fetching %s token...", kind), 2)

		if _, err := tokens.GetToken(ctx, kind, region, env, false); err != nil {
			step(fmt.Sprintf("✗ Error: %v", err), 4)
			fmt.Println()
			continue
		}

		step(fmt.Sprintf("✓ Retrieved %s token", kind), 4)
		printTokenDisplay(tokens, kind, globals.Verbose)
		fmt.Println()
	}

	opEnd("view tokens", true)

	return nil
}

func printTokenDisplay(tokens *auth.Manager, kind auth.Kind, verbose bool) {
	cached, ok := tokens.TokenInfo(kind)
	if !ok {
		fmt.Printf("No %s token cached.\n", kind)
		return
	}

	fmt.Printf("%s Token:\n", strings.ToUpper(string(kind)))
	fmt.Printf("  Access Token: %s\n", cached.Token.AccessToken)
	fmt.Printf("  Client ID: %s\n", cached.ClientID)
	fmt.Printf("  Client Secret: %s\n", cached.ClientSecret)
	fmt.Printf("  Expires At: %s\n", cached.Token.Expiry.UTC().Format(time.RFC3339))

	if verbose {
		printTokenClaims(cached.Token.AccessToken)
	}
}

// printTokenClaims shows the registered claims of a JWT access token.
// Display only; the parse is deliberately unverified and non-JWT tokens
// are skipped silently.
func printTokenClaims(accessToken string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return
	}

	if iss, err := claims.GetIssuer(); err == nil && iss != "" {
		fmt.Printf("  Issuer: %s\n", iss)
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		fmt.Printf("  Subject: %s\n", sub)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Printf("  JWT Expiry: %s\n", exp.Time.UTC().Format(time.RFC3339))
	}
}
