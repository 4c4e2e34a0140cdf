package controllers

import (
	"net/http"

	"github.com/atlauncher/atlauncher-api/internal/middleware"
	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/atlauncher/atlauncher-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ClientController handles HTTP requests for managing OAuth2 clients
type ClientController struct {
	clients    services.ClientService
	bcryptCost int
}

// NewClientController creates a new instance of ClientController
func NewClientController(clients services.ClientService, bcryptCost int) *ClientController {
	return &ClientController{clients: clients, bcryptCost: bcryptCost}
}

// CreateClient godoc
// @Summary Create OAuth2 client
// @Description Create a new OAuth2 client for API access
// @Tags OAuth2 Clients
// @Accept json
// @Produce json
// @Param client body object{name=string,domain=string,scopes=string,grant_types=string,redirect_uri=string} true "Client details"
// @Success 201 {object} map[string]interface{} "Client created with client_id and client_secret"
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/clients [post]
func (cc *ClientController) CreateClient(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Domain      string `json:"domain"`
		Scopes      string `json:"scopes"`
		GrantTypes  string `json:"grant_types"`
		RedirectURI string `json:"redirect_uri"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	// Generate client secret; the plaintext is only returned once
	secret := uuid.New().String()
	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), cc.bcryptCost)
	if err != nil {
		respondServerError(c, "Failed to generate client secret")
		return
	}

	client := &models.OAuthClient{
		ID:          uuid.New().String(),
		Secret:      string(hashedSecret),
		Name:        req.Name,
		Domain:      req.Domain,
		Scopes:      req.Scopes,
		GrantTypes:  req.GrantTypes,
		RedirectURI: req.RedirectURI,
		UserID:      c.GetUint(middleware.ContextUserID),
	}

	if err := cc.clients.CreateClient(client); err != nil {
		respondServerError(c, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client_id":     client.ID,
		"client_secret": secret,
		"name":          client.Name,
		"scopes":        client.Scopes,
		"grant_types":   client.GrantTypes,
		"redirect_uri":  client.RedirectURI,
	})
}

// ListClients godoc
// @Summary List OAuth2 clients
// @Description Get all OAuth2 clients owned by the authenticated user
// @Tags OAuth2 Clients
// @Produce json
// @Success 200 {array} models.OAuthClient
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/clients [get]
func (cc *ClientController) ListClients(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	clients, err := cc.clients.GetClientsByUserID(userID)
	if err != nil {
		respondServerError(c, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// DeleteClient godoc
// @Summary Delete OAuth2 client
// @Description Delete an OAuth2 client owned by the authenticated user
// @Tags OAuth2 Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 204 "Client deleted successfully"
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/clients/{id} [delete]
func (cc *ClientController) DeleteClient(c *gin.Context) {
	clientID := c.Param("id")
	userID := c.GetUint(middleware.ContextUserID)

	if err := cc.clients.DeleteClient(clientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(http.StatusNotFound, "Client not found."))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
