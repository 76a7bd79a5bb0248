package oidc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/pkg/middleware"
)

var ErrNotConfigured = errors.New("keycloak is not configured")

// Verifier validates Keycloak-issued ID tokens for the admin console.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// Issuer returns the realm issuer URL for cfg.
func Issuer(cfg config.KeycloakConfig) string {
	base := strings.TrimRight(cfg.URL, "/")
	if cfg.Realm == "" || strings.Contains(base, "/realms/") {
		return base
	}
	return base + "/realms/" + cfg.Realm
}

// NewVerifier discovers the provider for cfg.
func NewVerifier(ctx context.Context, cfg config.KeycloakConfig) (*Verifier, error) {
	if cfg.URL == "" || cfg.ClientID == "" {
		return nil, ErrNotConfigured
	}
	provider, err := oidc.NewProvider(ctx, Issuer(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &Verifier{verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})}, nil
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return &realmToken{src: idToken}, nil
}

type claimsSource interface {
	Claims(v interface{}) error
}

// realmToken lifts Keycloak realm roles into the flat "role" claim used by
// the API middleware.
type realmToken struct {
	src claimsSource
}

func (t *realmToken) Claims(v interface{}) error {
	if err := t.src.Claims(v); err != nil {
		return err
	}
	m, ok := v.(*map[string]interface{})
	if !ok || *m == nil {
		return nil
	}
	if _, has := (*m)["role"]; has {
		return nil
	}
	(*m)["role"] = realmRole(*m)
	return nil
}

func realmRole(claims map[string]interface{}) string {
	access, _ := claims["realm_access"].(map[string]interface{})
	roles, _ := access["roles"].([]interface{})
	for _, r := range roles {
		if s, _ := r.(string); s == "admin" {
			return "admin"
		}
	}
	return "user"
}
