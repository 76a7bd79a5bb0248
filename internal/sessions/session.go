package sessions

import (
	"time"

	"github.com/ecohealth/sentinel/internal/models"
)

// Session is a refresh session. The refresh token doubles as the document key.
type Session struct {
	models.Base `bson:",inline"`
	UserID      string    `bson:"userId" json:"userId"`
	Role        string    `bson:"role" json:"role"`
	ExpiresAt   time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// RefreshToken returns the opaque token handed to the client.
func (s *Session) RefreshToken() string { return s.ID }

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }
