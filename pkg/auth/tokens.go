package auth

import "context"

// TokenGenerator issues the bearer token returned on register and login.
// Backed by the JWT generator in pkg/security/jwt.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
