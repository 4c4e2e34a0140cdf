package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"gorm.io/gorm"
)

// ErrUnauthenticated is returned when a bearer token does not resolve to a
// live access token: no matching row, revoked, or expired.
var ErrUnauthenticated = errors.New("Unauthenticated.")

// ResolvedToken is the live access token record behind a bearer string.
type ResolvedToken struct {
	UserID    uint
	ClientID  string
	Scopes    string
	ExpiresAt time.Time
}

// TokenResolver looks up access tokens by their stored value. Implementations
// are read-only.
type TokenResolver interface {
	ResolveAccessToken(ctx context.Context, access string) (*ResolvedToken, error)
}

type gormTokenResolver struct {
	db *gorm.DB
}

// NewTokenResolver creates a TokenResolver backed by the oauth_tokens table.
func NewTokenResolver(db *gorm.DB) TokenResolver {
	return &gormTokenResolver{db: db}
}

func (r *gormTokenResolver) ResolveAccessToken(ctx context.Context, access string) (*ResolvedToken, error) {
	var token models.OAuthToken
	if err := r.db.WithContext(ctx).Where("access_token = ?", access).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if !token.Live(time.Now()) {
		return nil, ErrUnauthenticated
	}

	resolved := &ResolvedToken{
		ClientID:  token.ClientID,
		Scopes:    token.Scopes,
		ExpiresAt: token.ExpiresAt,
	}

	if token.UserID != nil && *token.UserID != "" {
		userID, err := strconv.ParseUint(*token.UserID, 10, 32)
		if err != nil {
			return nil, ErrUnauthenticated
		}
		resolved.UserID = uint(userID)
	}

	return resolved, nil
}
