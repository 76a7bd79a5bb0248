package models

import "time"

// User is a dashboard account. Passwords are stored as bcrypt hashes.
type User struct {
	Base         `bson:",inline"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"passwordHash" json:"-"`
	Role         string     `bson:"role" json:"role"`
	Domain       string     `bson:"domain,omitempty" json:"domain,omitempty"`
	Status       string     `bson:"status" json:"status"`
	LoginCount   int        `bson:"loginCount" json:"loginCount"`
	LastLogin    *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	UserActive    = "active"
	UserSuspended = "suspended"
)

// SecurityLog records administrative and authentication events.
type SecurityLog struct {
	Base      `bson:",inline"`
	Type      string    `bson:"type" json:"type"`
	Action    string    `bson:"action" json:"action"`
	User      string    `bson:"user" json:"user"`
	IP        string    `bson:"ip,omitempty" json:"ip,omitempty"`
	Details   string    `bson:"details,omitempty" json:"details,omitempty"`
	Domain    string    `bson:"domain,omitempty" json:"domain,omitempty"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
