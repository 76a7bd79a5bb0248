package chatbot

import (
	"errors"
	"strings"
)

// Domain names a chat adapter.
type Domain string

const (
	Agriculture Domain = "agriculture"
	Healthcare  Domain = "healthcare"
	Environment Domain = "environment"
)

// MaxMessageLength bounds a single chat message in characters.
const MaxMessageLength = 1000

var (
	ErrInvalidDomain   = errors.New("Invalid domain. Must be: agriculture, healthcare, or environment")
	ErrMessageRequired = errors.New("Message is required")
	ErrMessageTooLong  = errors.New("Message must be between 1 and 1000 characters")
)

// ParseDomain matches s case-insensitively against the known domains.
func ParseDomain(s string) (Domain, error) {
	s = strings.TrimSpace(s)
	for _, d := range []Domain{Agriculture, Healthcare, Environment} {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", ErrInvalidDomain
}
