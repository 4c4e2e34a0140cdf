package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents someone who has signed up for an account. An account is not
// required to download or play packs, but is required to make packs and to
// play some private packs.
//
// New users receive a verification code and must confirm their account before
// logging in.
type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Username           string     `gorm:"uniqueIndex;not null;size:64" json:"username"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	Password           string     `gorm:"not null;size:60" json:"-"`
	MustChangePassword bool       `gorm:"not null;default:false" json:"must_change_password"`
	IsBanned           bool       `gorm:"not null;default:false" json:"is_banned"`
	BanReason          *string    `json:"ban_reason"`
	IsVerified         bool       `gorm:"not null;default:false" json:"is_verified"`
	VerificationCode   string     `gorm:"size:128" json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	BannedAt           *time.Time `json:"banned_at"`
	VerifiedAt         *time.Time `json:"verified_at"`

	Roles []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes the given plaintext password with bcrypt and stores the
// hash. Callers must invoke it exactly once per credential-set operation
// (create, or an update carrying a new password).
func (u *User) SetPassword(plain string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// HasRole reports whether the user has the named role among its loaded roles.
func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}
