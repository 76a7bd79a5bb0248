package llm

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("provider not configured")
	ErrBlankReply    = errors.New("provider returned a blank reply")
	ErrNoReply       = errors.New("no provider produced a reply")
)

// Request is one prompt. Providers without a separate system channel prepend
// System to User.
type Request struct {
	System string
	User   string
}

// Provider generates text from a prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// unavailable stands in for a provider whose credentials are missing.
type unavailable struct{ name string }

func (u unavailable) Name() string { return u.name }

func (u unavailable) Generate(ctx context.Context, req Request) (string, error) {
	return "", ErrNotConfigured
}
