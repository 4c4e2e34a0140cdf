package models

import (
	"time"
)

// Server is a public game server running a specific pack version.
type Server struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null;size:255" json:"name"`
	Host              string    `gorm:"not null;size:255" json:"host"`
	Port              int       `gorm:"not null;default:25565" json:"port"`
	Description       string    `json:"description"`
	PackID            uint      `gorm:"not null;index" json:"pack_id"`
	PackVersionID     uint      `gorm:"not null;index" json:"pack_version_id"`
	BannerURL         *string   `json:"banner_url"`
	WebsiteURL        *string   `json:"website_url"`
	DiscordInviteCode *string   `json:"discord_invite_code"`
	VotifierHost      *string   `json:"votifier_host"`
	VotifierPort      *int      `json:"votifier_port"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Server) TableName() string {
	return "servers"
}

// ServerFeaturedHistory records a period a server was featured for, including
// the purchase that triggered it.
type ServerFeaturedHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ServerID      uint      `gorm:"not null;index" json:"server_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	TransactionID string    `gorm:"not null;size:19" json:"transaction_id"`
	Days          int       `gorm:"not null" json:"days"`
	Price         float64   `gorm:"not null" json:"price"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `gorm:"not null" json:"expires_at"`
}

func (ServerFeaturedHistory) TableName() string {
	return "server_featured_history"
}
