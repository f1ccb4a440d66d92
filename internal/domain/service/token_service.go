package service

import (
	"errors"
	"time"
)

// Claims is the identity payload carried by an issued bearer token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Verification failure modes. Expiry is the only invalidation mechanism;
// there is no revocation list.
var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its embedded expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed means the token could not be parsed at all.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenBadSignature means the signature does not verify against the
	// server's signing secret (wrong key or tampered payload).
	ErrTokenBadSignature = errors.New("token signature invalid")
)

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, self-contained bearer token for the given
	// claims, valid for ttl. ttl <= 0 applies the configured default.
	Issue(claims Claims, ttl time.Duration) (string, error)

	// Verify checks a token string and returns its claims, or one of
	// ErrTokenExpired, ErrTokenMalformed, ErrTokenBadSignature.
	Verify(tokenString string) (*Claims, error)

	// TokenTTL returns the configured default token lifetime.
	TokenTTL() time.Duration
}
