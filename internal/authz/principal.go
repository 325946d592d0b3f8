package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("no authenticated principal")
	ErrForbidden       = errors.New("operation not permitted")
)

// Role is a closed variant; every policy switch over it must be exhaustive.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Principal is the resolved identity behind a request. It is threaded through
// context explicitly by the auth middleware; nothing in the process caches
// "who is asking" globally.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

type contextKey string

const principalKey contextKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
