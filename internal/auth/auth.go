package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidToken means the token was rejected; callers answer 401.
var ErrInvalidToken = errors.New("invalid token")

// Identity is what the identity provider vouches for.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type Resolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}
