package models

import (
	"strconv"
	"time"
)

// OAuthToken is an issued access token. Rows are created at token issuance
// and only ever mutated to flip Revoked. A token is admissible iff
// !Revoked && now < ExpiresAt, with no grace period.
type OAuthToken struct {
	ID          uint    `gorm:"primaryKey"`
	ClientID    string  `gorm:"not null"`
	UserID      *string // nullable for client credentials grants
	AccessToken string  `gorm:"uniqueIndex;not null"`
	Scopes      string
	Revoked     bool      `gorm:"not null;default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}

// Live reports whether the token is still admissible at the given instant.
func (t *OAuthToken) Live(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// OAuthRefreshToken is the refresh token minted alongside an access token.
// It carries its own expiry and revocation flag; revoking a refresh token
// does not retroactively revoke its access token.
type OAuthRefreshToken struct {
	ID            uint   `gorm:"primaryKey"`
	AccessTokenID uint   `gorm:"not null;index"`
	RefreshToken  string `gorm:"uniqueIndex;not null"`
	Scopes        string
	Revoked       bool      `gorm:"not null;default:false"`
	ExpiresAt     time.Time `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OAuthRefreshToken) TableName() string {
	return "oauth_refresh_tokens"
}

// Live reports whether the refresh token is still admissible.
func (t *OAuthRefreshToken) Live(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
