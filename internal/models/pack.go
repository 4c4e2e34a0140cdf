package models

import (
	"time"
)

// Pack types. Private packs require an account with access to play.
const (
	PackTypePublic     = "public"
	PackTypeSemiPublic = "semipublic"
	PackTypePrivate    = "private"
)

// Pack is a modpack published on the platform.
type Pack struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null;size:255" json:"name"`
	SafeName    string     `gorm:"uniqueIndex;not null;size:255" json:"safe_name"`
	Description *string    `json:"description"`
	Type        string     `gorm:"not null;default:'private';index" json:"type"`
	Enabled     bool       `gorm:"not null;default:true" json:"enabled"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DisabledAt  *time.Time `json:"disabled_at"`

	Versions []PackVersion `gorm:"foreignKey:PackID" json:"versions,omitempty"`
	Tags     []LauncherTag `gorm:"foreignKey:PackID" json:"tags,omitempty"`
}

func (Pack) TableName() string {
	return "packs"
}

// PackVersion is a single version of a Pack. A version is in development
// until published; once published its contents cannot change.
type PackVersion struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	PackID             uint       `gorm:"not null;index" json:"pack_id"`
	MinecraftVersionID *uint      `json:"minecraft_version_id"`
	Version            string     `gorm:"not null;size:64" json:"version"`
	IsPublished        bool       `gorm:"not null;default:false" json:"is_published"`
	Changelog          *string    `json:"changelog"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	PublishedAt        *time.Time `json:"published_at"`
}

func (PackVersion) TableName() string {
	return "pack_versions"
}

// MinecraftVersion is a version of Minecraft that pack versions target.
type MinecraftVersion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Version   string    `gorm:"not null;size:16" json:"version"`
	JSON      *string   `json:"json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MinecraftVersion) TableName() string {
	return "minecraft_versions"
}

// LauncherTag is a tag attached to a pack, shown in the launcher.
type LauncherTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Tag       string    `gorm:"not null;size:128" json:"tag"`
	PackID    uint      `gorm:"not null;index" json:"pack_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (LauncherTag) TableName() string {
	return "launcher_tags"
}
