package domain

import (
	"context"
	"errors"
	"time"
)

// Role represents a user's access level.
type Role string

const (
	// RoleCounter operates a single counter's cash book.
	RoleCounter Role = "counter"

	// RoleAdmin confirms, unlocks and corrects entries across counters.
	RoleAdmin Role = "admin"

	// RoleSupervisor has read-only access to all entries.
	RoleSupervisor Role = "supervisor"
)

var validRoles = map[Role]bool{
	RoleCounter:    true,
	RoleAdmin:      true,
	RoleSupervisor: true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// Identity is the authenticated caller every operation runs under.
type Identity struct {
	UserID      string
	Username    string
	Role        Role
	CounterName string
}

// CanOperate reports whether the identity may mutate the given counter's
// entries. Counter users are bound to their own counter.
func (id Identity) CanOperate(counter string) bool {
	return id.Role == RoleCounter && id.CounterName == counter
}

// CanAdminister reports whether the identity may confirm, unlock or
// override entries.
func (id Identity) CanAdminister() bool {
	return id.Role == RoleAdmin
}

// CanViewAll reports whether the identity may list entries across counters.
func (id Identity) CanViewAll() bool {
	return id.Role == RoleAdmin || id.Role == RoleSupervisor
}

// User is a stored login. Counter users carry the counter they operate.
type User struct {
	ID             string
	Username       string
	HashedPassword string
	Role           Role
	CounterName    string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identity derives the caller identity from a stored user.
func (u *User) Identity() Identity {
	return Identity{
		UserID:      u.ID,
		Username:    u.Username,
		Role:        u.Role,
		CounterName: u.CounterName,
	}
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type identityContextKey struct{}

// WithIdentity stores the authenticated identity on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
