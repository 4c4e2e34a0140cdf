package auth

import (
	"net/http"
	"strconv"
	"time"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	"golang.org/x/crypto/bcrypt"
)

// HandleToken handles the token endpoint for the supported grants
// @Summary Token Endpoint
// @Description Obtain an access token using client credentials, authorization code or refresh token grant
// @Tags OAuth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type: client_credentials, authorization_code or refresh_token"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Param code formData string false "Authorization code (required for authorization_code grant)"
// @Param refresh_token formData string false "Refresh token (required for refresh_token grant)"
// @Param redirect_uri formData string false "Redirect URI (required for authorization_code grant)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /oauth/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	grantType := c.PostForm("grant_type")

	switch grantType {
	case "client_credentials":
		o.handleClientCredentials(c)
	case "authorization_code":
		o.handleAuthorizationCode(c)
	case "refresh_token":
		o.handleRefreshToken(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_grant_type"})
	}
}

func (o *OAuthService) handleClientCredentials(c *gin.Context) {
	client, ok := o.authenticateClient(c)
	if !ok {
		return
	}

	// Client credentials tokens act on behalf of the client's owning user
	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     client.ID,
		ClientSecret: c.PostForm("client_secret"),
		UserID:       strconv.FormatUint(uint64(client.UserID), 10),
		Scope:        requestedScope(c, client),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	writeTokenResponse(c, ti)
}

func (o *OAuthService) handleAuthorizationCode(c *gin.Context) {
	code := c.PostForm("code")

	client, ok := o.authenticateClient(c)
	if !ok {
		return
	}

	// Validate authorization code
	var authCode models.OAuthCode
	if err := o.db.Where("code = ?", code).First(&authCode).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_grant"})
		return
	}

	if time.Now().After(authCode.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code_expired"})
		return
	}

	if authCode.ClientID != client.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_grant"})
		return
	}

	// The manager loads the code from the token store, validates it and
	// deletes it once used
	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.AuthorizationCode, &oauth2.TokenGenerateRequest{
		ClientID:     client.ID,
		ClientSecret: c.PostForm("client_secret"),
		Code:         code,
		RedirectURI:  authCode.RedirectURI,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	writeTokenResponse(c, ti)
}

func (o *OAuthService) handleRefreshToken(c *gin.Context) {
	refresh := c.PostForm("refresh_token")
	if refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	client, ok := o.authenticateClient(c)
	if !ok {
		return
	}

	ti, err := o.server.Manager.RefreshAccessToken(c, &oauth2.TokenGenerateRequest{
		ClientID:     client.ID,
		ClientSecret: c.PostForm("client_secret"),
		Refresh:      refresh,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_grant"})
		return
	}

	writeTokenResponse(c, ti)
}

// HandleRevoke handles RFC 7009 token revocation. Revoking an access token
// flips its revoked flag; revoking a refresh token only revokes the refresh
// token, never the access token it was issued alongside.
// @Summary Revoke Endpoint
// @Description Revoke an access or refresh token
// @Tags OAuth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param token formData string true "The token to revoke"
// @Param token_type_hint formData string false "Either access_token or refresh_token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /oauth/revoke [post]
func (o *OAuthService) HandleRevoke(c *gin.Context) {
	token := c.PostForm("token")
	hint := c.PostForm("token_type_hint")

	if _, ok := o.authenticateClient(c); !ok {
		return
	}

	// Per RFC 7009 the hint is advisory; try both tables when it's absent or
	// the hinted lookup matches nothing.
	if hint != "refresh_token" {
		result := o.db.Model(&models.OAuthToken{}).
			Where("access_token = ?", token).
			Update("revoked", true)
		if result.RowsAffected > 0 {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
	}

	o.db.Model(&models.OAuthRefreshToken{}).
		Where("refresh_token = ?", token).
		Update("revoked", true)

	c.JSON(http.StatusOK, gin.H{})
}

// authenticateClient loads the client from the form credentials and verifies
// the secret against the stored bcrypt hash. On failure it writes the error
// response and returns false.
func (o *OAuthService) authenticateClient(c *gin.Context) (*models.OAuthClient, bool) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")

	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_client"})
		return nil, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.Secret), []byte(clientSecret)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_client"})
		return nil, false
	}

	return &client, true
}

// requestedScope returns the scope from the request, falling back to the
// client's full allowed scope list.
func requestedScope(c *gin.Context, client *models.OAuthClient) string {
	if scope := c.PostForm("scope"); scope != "" {
		return scope
	}
	return client.Scopes
}

func writeTokenResponse(c *gin.Context, ti oauth2.TokenInfo) {
	response := gin.H{
		"access_token": ti.GetAccess(),
		"token_type":   "Bearer",
		"expires_in":   int64(ti.GetAccessExpiresIn() / time.Second),
		"scope":        ti.GetScope(),
	}
	if ti.GetRefresh() != "" {
		response["refresh_token"] = ti.GetRefresh()
	}
	c.JSON(http.StatusOK, response)
}
