package auth

import (
	"time"

	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type OAuthService struct {
	server *server.Server
	db     *gorm.DB
}

// NewOAuthService builds the OAuth2 authorization server: gorm-backed client
// and token stores, JWT access tokens signed with HS512, and expiries taken
// from configuration.
func NewOAuthService(db *gorm.DB, jwtSecret string, accessTTL, refreshTTL time.Duration) *OAuthService {
	manager := manage.NewDefaultManager()

	// Use JWT for access tokens, carrying the principal and scope
	manager.MapAccessGenerate(NewCustomJWTAccessGenerate([]byte(jwtSecret), jwt.SigningMethodHS512, db))

	manager.SetClientTokenCfg(&manage.Config{
		AccessTokenExp: accessTTL,
	})
	manager.SetAuthorizeCodeTokenCfg(&manage.Config{
		AccessTokenExp:    accessTTL,
		RefreshTokenExp:   refreshTTL,
		IsGenerateRefresh: true,
	})

	// Configure token store
	tokenStore := NewGormTokenStore(db)
	manager.MustTokenStorage(tokenStore, nil)

	// Configure client store
	clientStore := NewGormClientStore(db)
	manager.MapClientStorage(clientStore)

	srv := server.NewDefaultServer(manager)
	srv.SetClientInfoHandler(server.ClientFormHandler)

	return &OAuthService{
		server: srv,
		db:     db,
	}
}

func (o *OAuthService) GetServer() *server.Server {
	return o.server
}
