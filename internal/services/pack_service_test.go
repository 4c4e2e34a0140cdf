package services

import (
	"testing"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPackTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Pack{}, &models.PackVersion{},
		&models.MinecraftVersion{}, &models.LauncherTag{},
	)
	require.NoError(t, err)

	return db
}

func TestSafeName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "spaces stripped", input: "The 1.7.10 Pack", expected: "The1710Pack"},
		{name: "already safe", input: "Vanilla-Plus_2", expected: "Vanilla-Plus_2"},
		{name: "punctuation stripped", input: "Sky Factory (Official)!", expected: "SkyFactoryOfficial"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeName(tt.input))
		})
	}
}

func TestCreatePackDefaults(t *testing.T) {
	db := setupPackTestDB(t)
	svc := NewPackService(db)

	pack := &models.Pack{Name: "The 1.7.10 Pack"}
	require.NoError(t, svc.CreatePack(pack))

	assert.Equal(t, "The1710Pack", pack.SafeName)
	assert.Equal(t, models.PackTypePrivate, pack.Type)
}

func TestPackVersions(t *testing.T) {
	db := setupPackTestDB(t)
	svc := NewPackService(db)

	pack := &models.Pack{Name: "Test Pack"}
	require.NoError(t, svc.CreatePack(pack))
	other := &models.Pack{Name: "Other Pack"}
	require.NoError(t, svc.CreatePack(other))

	require.NoError(t, svc.CreatePackVersion(&models.PackVersion{PackID: pack.ID, Version: "1.0.0"}))
	require.NoError(t, svc.CreatePackVersion(&models.PackVersion{PackID: pack.ID, Version: "1.1.0"}))
	require.NoError(t, svc.CreatePackVersion(&models.PackVersion{PackID: other.ID, Version: "2.0.0"}))

	versions, err := svc.GetPackVersions(pack.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 2)
	for _, v := range versions {
		assert.Equal(t, pack.ID, v.PackID)
	}
}
