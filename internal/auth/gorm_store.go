package auth

import (
	"context"
	"time"

	internalmodels "github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/go-oauth2/oauth2/v4/models"
	"gorm.io/gorm"
)

type GormClientStore struct {
	db *gorm.DB
}

func NewGormClientStore(db *gorm.DB) *GormClientStore {
	return &GormClientStore{db: db}
}

func (s *GormClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	var client internalmodels.OAuthClient
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

type GormTokenStore struct {
	db *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{db: db}
}

// Create persists the issued access token and, when a refresh token was
// generated, its own row linked 1:1 to the access token.
func (s *GormTokenStore) Create(ctx context.Context, info oauth2.TokenInfo) error {
	userID := info.GetUserID()

	token := &internalmodels.OAuthToken{
		ClientID:    info.GetClientID(),
		UserID:      &userID,
		AccessToken: info.GetAccess(),
		Scopes:      info.GetScope(),
		ExpiresAt:   info.GetAccessCreateAt().Add(info.GetAccessExpiresIn()),
	}

	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return err
	}

	if refresh := info.GetRefresh(); refresh != "" {
		refreshToken := &internalmodels.OAuthRefreshToken{
			AccessTokenID: token.ID,
			RefreshToken:  refresh,
			Scopes:        info.GetScope(),
			ExpiresAt:     info.GetRefreshCreateAt().Add(info.GetRefreshExpiresIn()),
		}
		return s.db.WithContext(ctx).Create(refreshToken).Error
	}

	return nil
}

// RemoveByAccess flips the revoked flag. Token rows are never deleted so
// expired and revoked tokens stay permanently inadmissible.
func (s *GormTokenStore) RemoveByAccess(ctx context.Context, access string) error {
	return s.db.WithContext(ctx).Model(&internalmodels.OAuthToken{}).
		Where("access_token = ?", access).
		Update("revoked", true).Error
}

// RemoveByRefresh revokes a refresh token. The access token it was issued
// alongside is left untouched.
func (s *GormTokenStore) RemoveByRefresh(ctx context.Context, refresh string) error {
	return s.db.WithContext(ctx).Model(&internalmodels.OAuthRefreshToken{}).
		Where("refresh_token = ?", refresh).
		Update("revoked", true).Error
}

func (s *GormTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var token internalmodels.OAuthToken
	if err := s.db.WithContext(ctx).Where("access_token = ?", access).First(&token).Error; err != nil {
		return nil, err
	}

	if !token.Live(time.Now()) {
		return nil, gorm.ErrRecordNotFound
	}

	userID := ""
	if token.UserID != nil {
		userID = *token.UserID
	}

	return &models.Token{
		ClientID:        token.ClientID,
		UserID:          userID,
		Access:          token.AccessToken,
		AccessCreateAt:  token.CreatedAt,
		AccessExpiresIn: time.Until(token.ExpiresAt),
		Scope:           token.Scopes,
	}, nil
}

func (s *GormTokenStore) GetByRefresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	var refreshToken internalmodels.OAuthRefreshToken
	if err := s.db.WithContext(ctx).Where("refresh_token = ?", refresh).First(&refreshToken).Error; err != nil {
		return nil, err
	}

	if !refreshToken.Live(time.Now()) {
		return nil, gorm.ErrRecordNotFound
	}

	var token internalmodels.OAuthToken
	if err := s.db.WithContext(ctx).First(&token, refreshToken.AccessTokenID).Error; err != nil {
		return nil, err
	}

	userID := ""
	if token.UserID != nil {
		userID = *token.UserID
	}

	return &models.Token{
		ClientID:         token.ClientID,
		UserID:           userID,
		Access:           token.AccessToken,
		AccessCreateAt:   token.CreatedAt,
		AccessExpiresIn:  time.Until(token.ExpiresAt),
		Refresh:          refreshToken.RefreshToken,
		RefreshCreateAt:  refreshToken.CreatedAt,
		RefreshExpiresIn: time.Until(refreshToken.ExpiresAt),
		Scope:            refreshToken.Scopes,
	}, nil
}

func (s *GormTokenStore) GetByCode(ctx context.Context, code string) (oauth2.TokenInfo, error) {
	var oauthCode internalmodels.OAuthCode
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&oauthCode).Error; err != nil {
		return nil, err
	}

	// Check if the code has expired
	if time.Now().After(oauthCode.ExpiresAt) {
		return nil, gorm.ErrRecordNotFound
	}

	return &models.Token{
		ClientID:            oauthCode.ClientID,
		UserID:              oauthCode.UserID,
		Code:                oauthCode.Code,
		CodeCreateAt:        oauthCode.CreatedAt,
		CodeExpiresIn:       oauthCode.ExpiresAt.Sub(oauthCode.CreatedAt),
		CodeChallenge:       oauthCode.CodeChallenge,
		CodeChallengeMethod: oauthCode.CodeChallengeMethod,
		RedirectURI:         oauthCode.RedirectURI,
		Scope:               oauthCode.Scopes,
	}, nil
}

func (s *GormTokenStore) RemoveByCode(ctx context.Context, code string) error {
	return s.db.WithContext(ctx).Where("code = ?", code).Delete(&internalmodels.OAuthCode{}).Error
}

func (s *GormTokenStore) CreateCode(ctx context.Context, info oauth2.TokenInfo) error {
	code := &internalmodels.OAuthCode{
		ClientID:            info.GetClientID(),
		UserID:              info.GetUserID(),
		Code:                info.GetCode(),
		CodeChallenge:       info.GetCodeChallenge(),
		CodeChallengeMethod: info.GetCodeChallengeMethod().String(),
		RedirectURI:         info.GetRedirectURI(),
		Scopes:              info.GetScope(),
		ExpiresAt:           info.GetCodeCreateAt().Add(info.GetCodeExpiresIn()),
	}

	return s.db.WithContext(ctx).Create(code).Error
}
