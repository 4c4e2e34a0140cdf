package auth

import (
	"context"
	"testing"
	"time"

	internalmodels "github.com/atlauncher/atlauncher-api/internal/models"
	oauthmodels "github.com/go-oauth2/oauth2/v4/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTokenStoreCreatePersistsAccessAndRefresh(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)

	now := time.Now()
	err := store.Create(context.Background(), &oauthmodels.Token{
		ClientID:         "client-1",
		UserID:           "7",
		Access:           "access-abc",
		AccessCreateAt:   now,
		AccessExpiresIn:  time.Hour,
		Refresh:          "refresh-abc",
		RefreshCreateAt:  now,
		RefreshExpiresIn: 24 * time.Hour,
		Scope:            "self:read",
	})
	require.NoError(t, err)

	var access internalmodels.OAuthToken
	require.NoError(t, db.Where("access_token = ?", "access-abc").First(&access).Error)
	assert.Equal(t, "client-1", access.ClientID)
	assert.Equal(t, "self:read", access.Scopes)
	assert.False(t, access.Revoked)

	var refresh internalmodels.OAuthRefreshToken
	require.NoError(t, db.Where("refresh_token = ?", "refresh-abc").First(&refresh).Error)
	assert.Equal(t, access.ID, refresh.AccessTokenID)
	assert.False(t, refresh.Revoked)
}

func TestTokenStoreCreateWithoutRefresh(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)

	err := store.Create(context.Background(), &oauthmodels.Token{
		ClientID:        "client-1",
		UserID:          "7",
		Access:          "access-only",
		AccessCreateAt:  time.Now(),
		AccessExpiresIn: time.Hour,
	})
	require.NoError(t, err)

	var count int64
	db.Model(&internalmodels.OAuthRefreshToken{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestTokenStoreRemoveByAccessFlipsRevoked(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)

	uid := "7"
	require.NoError(t, db.Create(&internalmodels.OAuthToken{
		ClientID:    "client-1",
		UserID:      &uid,
		AccessToken: "access-abc",
		ExpiresAt:   time.Now().Add(time.Hour),
	}).Error)

	require.NoError(t, store.RemoveByAccess(context.Background(), "access-abc"))

	// The row survives revocation
	var token internalmodels.OAuthToken
	require.NoError(t, db.Where("access_token = ?", "access-abc").First(&token).Error)
	assert.True(t, token.Revoked)

	_, err := store.GetByAccess(context.Background(), "access-abc")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTokenStoreRevokingRefreshLeavesAccessAlone(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)

	uid := "7"
	access := &internalmodels.OAuthToken{
		ClientID:    "client-1",
		UserID:      &uid,
		AccessToken: "access-abc",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(access).Error)
	require.NoError(t, db.Create(&internalmodels.OAuthRefreshToken{
		AccessTokenID: access.ID,
		RefreshToken:  "refresh-abc",
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	}).Error)

	require.NoError(t, store.RemoveByRefresh(context.Background(), "refresh-abc"))

	var refresh internalmodels.OAuthRefreshToken
	require.NoError(t, db.Where("refresh_token = ?", "refresh-abc").First(&refresh).Error)
	assert.True(t, refresh.Revoked)

	// The paired access token stays live
	var token internalmodels.OAuthToken
	require.NoError(t, db.Where("access_token = ?", "access-abc").First(&token).Error)
	assert.False(t, token.Revoked)

	ti, err := store.GetByAccess(context.Background(), "access-abc")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", ti.GetAccess())
}

func TestTokenStoreGetByRefreshLinksAccessToken(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)

	uid := "7"
	access := &internalmodels.OAuthToken{
		ClientID:    "client-1",
		UserID:      &uid,
		AccessToken: "access-abc",
		Scopes:      "self:read",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(access).Error)
	require.NoError(t, db.Create(&internalmodels.OAuthRefreshToken{
		AccessTokenID: access.ID,
		RefreshToken:  "refresh-abc",
		Scopes:        "self:read",
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	}).Error)

	ti, err := store.GetByRefresh(context.Background(), "refresh-abc")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", ti.GetAccess())
	assert.Equal(t, "refresh-abc", ti.GetRefresh())
	assert.Equal(t, "7", ti.GetUserID())
	assert.Equal(t, "self:read", ti.GetScope())
}

func TestTokenStoreExpiredRefreshNotReturned(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)

	uid := "7"
	access := &internalmodels.OAuthToken{
		ClientID:    "client-1",
		UserID:      &uid,
		AccessToken: "access-abc",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(access).Error)
	require.NoError(t, db.Create(&internalmodels.OAuthRefreshToken{
		AccessTokenID: access.ID,
		RefreshToken:  "refresh-abc",
		ExpiresAt:     time.Now().Add(-time.Minute),
	}).Error)

	_, err := store.GetByRefresh(context.Background(), "refresh-abc")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
