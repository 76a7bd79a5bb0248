package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSecret = errors.New("JWT secret is not configured")

// GenerateAccessToken creates an HS256 access token carrying sub, role and email.
func GenerateAccessToken(secret string, u *models.User, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"role":  u.Role,
		"email": u.Email,
		"name":  u.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ExpiresAt returns the exp claim of a token signed with secret.
func ExpiresAt(secret, raw string) (time.Time, error) {
	claims, err := parse(secret, raw)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("exp claim: %w", err)
	}
	return exp.Time, nil
}

func parse(secret, raw string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

type claimsToken struct {
	claims jwt.MapClaims
}

func (t *claimsToken) Claims(v interface{}) error {
	m, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unsupported claims target %T", v)
	}
	*m = map[string]interface{}(t.claims)
	return nil
}

// Verifier validates access tokens issued by GenerateAccessToken.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier { return &Verifier{secret: secret} }

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	claims, err := parse(v.secret, raw)
	if err != nil {
		return nil, err
	}
	return &claimsToken{claims: claims}, nil
}
