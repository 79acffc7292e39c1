package auth

import (
	"context"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// Provider resolves a bearer token to the user identity. The resolved User
// carries FirstSeenAt, the anchor timestamp for the welcome window.
type Provider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}
