package proxy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/scy"
	"golang.org/x/oauth2"

	"github.com/viant/mcp-proxy/internal/diag"
)

// buildHTTPClient returns the client used by the HTTP backend: nil when no
// auth secret is configured, otherwise a client attaching the loaded bearer
// token to every request.
func buildHTTPClient(ctx context.Context, options *Options, logger *diag.Logger) (*http.Client, error) {
	if options.AuthSecret == "" {
		return nil, nil
	}
	secrets := scy.New()
	resource := scy.NewResource("", options.AuthSecret, options.AuthSecretKey)
	secret, err := secrets.Load(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to load auth secret: %v %w", options.AuthSecret, err)
	}
	token := strings.TrimSpace(secret.String())
	if token == "" {
		return nil, fmt.Errorf("auth secret was empty: %v", options.AuthSecret)
	}
	warnIfExpired(token, logger)
	return authorizedClient(ctx, token), nil
}

func authorizedClient(ctx context.Context, token string) *http.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return oauth2.NewClient(ctx, source)
}

// warnIfExpired flags an already expired JWT bearer; opaque tokens are left
// alone since their expiry is not observable.
func warnIfExpired(token string, logger *diag.Logger) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return
	}
	if expiry.Before(time.Now()) {
		logger.Warnf("auth token expired at %v", expiry.Time)
	}
}
