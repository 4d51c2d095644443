package port

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for any credential the verifier rejects. The
// cause (missing, malformed, expired, bad signature) is deliberately opaque:
// callers reject the connection or request and nothing else.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// TokenVerifier validates a bearer credential and yields the user identity
// it was issued for. Token issuance lives in the auth service; this side
// only consumes verification.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}
