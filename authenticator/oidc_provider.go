package authenticator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// Config holds the OpenID Connect (Auth0) client configuration
type Config struct {
	Domain       string
	ClientID     string
	ClientSecret string
	CallbackURL  string
	// Audience is the API identifier bearer tokens must be issued for. When empty
	// bearer tokens are checked against ClientID.
	Audience string
}

// OIDCProvider implements Provider and BearerVerifier for an OpenID Connect issuer
type OIDCProvider struct {
	config         oauth2.Config
	audience       string
	idVerifier     *oidc.IDTokenVerifier
	bearerVerifier *oidc.IDTokenVerifier
}

// NewOIDCProvider discovers the issuer at https://<domain>/ and returns a provider for it
func NewOIDCProvider(ctx context.Context, cfg Config) (*OIDCProvider, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	provider, err := oidc.NewProvider(ctx, IssuerURL(cfg.Domain))
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC issuer: %w", err)
	}

	p := newOIDCProvider(cfg, provider.Endpoint(), func(c *oidc.Config) *oidc.IDTokenVerifier {
		return provider.Verifier(c)
	})
	return p, nil
}

// NewOIDCProviderWithKeys builds a provider without discovery, verifying tokens
// against keys. Used where the issuer's endpoints are known up front.
func NewOIDCProviderWithKeys(cfg Config, endpoint oauth2.Endpoint, keys oidc.KeySet) (*OIDCProvider, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	issuer := IssuerURL(cfg.Domain)
	return newOIDCProvider(cfg, endpoint, func(c *oidc.Config) *oidc.IDTokenVerifier {
		return oidc.NewVerifier(issuer, keys, c)
	}), nil
}

func newOIDCProvider(cfg Config, endpoint oauth2.Endpoint, verifier func(*oidc.Config) *oidc.IDTokenVerifier) *OIDCProvider {
	audience := cfg.Audience
	if audience == "" {
		audience = cfg.ClientID
	}

	return &OIDCProvider{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     endpoint,
			Scopes:       []string{oidc.ScopeOpenID, "profile"},
		},
		audience:       cfg.Audience,
		idVerifier:     verifier(&oidc.Config{ClientID: cfg.ClientID}),
		bearerVerifier: verifier(&oidc.Config{ClientID: audience}),
	}
}

// IssuerURL is the issuer for an Auth0 style domain
func IssuerURL(domain string) string {
	domain = strings.TrimSuffix(strings.TrimPrefix(domain, "https://"), "/")
	return "https://" + domain + "/"
}

func (cfg Config) validate() error {
	// Validate required configuration
	if cfg.Domain == "" {
		return errors.New("domain is required")
	}
	if cfg.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return errors.New("client secret is required")
	}
	if cfg.CallbackURL == "" {
		return errors.New("callback URL is required")
	}
	return nil
}

// GetAuthURL returns the authorization URL
func (p *OIDCProvider) GetAuthURL(state string) string {
	if p.audience != "" {
		return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("audience", p.audience))
	}
	return p.config.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for tokens
func (p *OIDCProvider) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	oauth2Token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	// Convert oauth2.Token to our Token type
	token := &Token{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
		Expiry:       oauth2Token.Expiry.Unix(),
	}

	// Extract ID token if present
	if idToken, ok := oauth2Token.Extra("id_token").(string); ok {
		token.IDToken = idToken
	}

	return token, nil
}

// GetClaims extracts user claims from the ID token
func (p *OIDCProvider) GetClaims(ctx context.Context, token *Token) (Claims, error) {
	if token.IDToken == "" {
		return nil, errors.New("no id_token in token")
	}
	return verify(ctx, p.idVerifier, token.IDToken)
}

// VerifyBearer checks the signature, issuer, audience and expiry of an access
// token and returns its claims
func (p *OIDCProvider) VerifyBearer(ctx context.Context, rawToken string) (Claims, error) {
	claims, err := verify(ctx, p.bearerVerifier, rawToken)
	if err != nil {
		return nil, err
	}
	if claims.Subject() == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func verify(ctx context.Context, verifier *oidc.IDTokenVerifier, raw string) (Claims, error) {
	idToken, err := verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}

	return claims, nil
}
