package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OAuthClient is a registered OAuth2 client application. Secret holds a
// bcrypt hash; the plaintext is only ever returned once at creation time.
type OAuthClient struct {
	ID          string `gorm:"primaryKey"`
	Secret      string `gorm:"not null"`
	Name        string
	Domain      string
	UserID      uint   // owning user, for admin management
	Scopes      string // space-separated list of allowed scopes
	GrantTypes  string // space-separated list: "authorization_code client_credentials refresh_token"
	RedirectURI string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

// GetID implements oauth2.ClientInfo.
func (c *OAuthClient) GetID() string {
	return c.ID
}

// GetSecret implements oauth2.ClientInfo.
func (c *OAuthClient) GetSecret() string {
	return c.Secret
}

// GetDomain implements oauth2.ClientInfo.
func (c *OAuthClient) GetDomain() string {
	return c.Domain
}

// IsPublic implements oauth2.ClientInfo.
func (c *OAuthClient) IsPublic() bool {
	return false
}

// VerifyPassword implements oauth2.ClientPasswordVerifier, comparing the
// plaintext secret against the stored bcrypt hash.
func (c *OAuthClient) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(password)) == nil
}

// GetUserID implements oauth2.ClientInfo.
func (c *OAuthClient) GetUserID() string {
	if c.UserID == 0 {
		return ""
	}
	return uintToString(c.UserID)
}
