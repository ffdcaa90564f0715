// Package auth gates the admin endpoints (scrape trigger, fixture import).
//
// The club site's real identity service lives elsewhere; this package only
// models its boundary: something that turns a bearer token into claims or
// an error. StaticVerifier is the deployment used today — a single operator
// token from the environment.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
)

// Claims are the decoded identity attached to an admin request.
type Claims struct {
	UID   string
	Email string
}

// ErrInvalidToken is returned for missing, malformed, or unknown tokens.
var ErrInvalidToken = errors.New("invalid token")

// Verifier turns a bearer token into claims, or fails.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// StaticVerifier accepts exactly one configured token. An empty configured
// token rejects everything, which fails closed when ADMIN_API_TOKEN is
// unset.
type StaticVerifier struct {
	Token string
}

func (v StaticVerifier) Verify(_ context.Context, token string) (Claims, error) {
	if v.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(v.Token)) != 1 {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UID: "admin", Email: "admin@marsdencc.org.au"}, nil
}
