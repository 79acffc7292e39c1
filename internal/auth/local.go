package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// JWTAuthProvider validates HS256 tokens issued by the identity service,
// without a network round trip. Claims carry the user id (sub), display name,
// and the first-seen anchor timestamp.
type JWTAuthProvider struct {
	secret []byte
	logger internal.Logger
}

type identityClaims struct {
	Name      string `json:"name"`
	FirstSeen int64  `json:"first_seen"`
	jwt.RegisteredClaims
}

func NewJWTAuthProvider(secret string, logger internal.Logger) *JWTAuthProvider {
	return &JWTAuthProvider{secret: []byte(secret), logger: logger}
}

func (a *JWTAuthProvider) ValidateTokenLocal(token string) (*internal.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &identityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		a.logger.Warnf("invalid token: %v", err)
		return nil, errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(*identityClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		a.logger.Warnf("token missing subject claim")
		return nil, errors.New("invalid token")
	}
	return &internal.User{
		ID:          claims.Subject,
		Name:        claims.Name,
		FirstSeenAt: time.Unix(claims.FirstSeen, 0).UTC(),
	}, nil
}

func (a *JWTAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	return nil, errors.New("not implemented in JWTAuthProvider")
}

// IssueToken mints a token for the given user. Used by tests and local
// development tooling; production tokens come from the identity service.
func (a *JWTAuthProvider) IssueToken(user *internal.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Name:      user.Name,
		FirstSeen: user.FirstSeenAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

var _ Provider = (*JWTAuthProvider)(nil)
