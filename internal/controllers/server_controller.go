package controllers

import (
	"net/http"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/atlauncher/atlauncher-api/internal/services"
	"github.com/atlauncher/atlauncher-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// ServerController handles HTTP requests related to game servers
type ServerController interface {
	GetAllServers(ctx *gin.Context)
	GetServerByID(ctx *gin.Context)
	CreateServer(ctx *gin.Context)
	UpdateServer(ctx *gin.Context)
	DeleteServer(ctx *gin.Context)
	GetFeaturedHistory(ctx *gin.Context)
}

type serverController struct {
	servers services.ServerService
}

// NewServerController creates a new instance of ServerController
func NewServerController(servers services.ServerService) ServerController {
	return &serverController{servers: servers}
}

// GetAllServers godoc
// @Summary Get all servers
// @Tags servers
// @Produce json
// @Success 200 {array} models.Server
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/servers [get]
func (c *serverController) GetAllServers(ctx *gin.Context) {
	servers, err := c.servers.GetAllServers()
	if err != nil {
		respondServerError(ctx, "Failed to retrieve servers")
		return
	}
	ctx.JSON(http.StatusOK, servers)
}

// GetServerByID godoc
// @Summary Get server by ID
// @Tags servers
// @Produce json
// @Param id path int true "Server ID"
// @Success 200 {object} models.Server
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/servers/{id} [get]
func (c *serverController) GetServerByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	server, err := c.servers.GetServerByID(id)
	if err != nil {
		respondNotFound(ctx, "Server", id)
		return
	}
	ctx.JSON(http.StatusOK, server)
}

// CreateServer godoc
// @Summary Create a server
// @Tags servers
// @Accept json
// @Produce json
// @Param server body validation.ServerPayload true "Server object"
// @Success 200 {object} models.Server
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/servers [post]
func (c *serverController) CreateServer(ctx *gin.Context) {
	var payload validation.ServerPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	if errs := validation.ValidateServer(payload, false); errs.Any() {
		respondValidationErrors(ctx, errs)
		return
	}

	server := &models.Server{
		Name:              *payload.Name,
		Host:              *payload.Host,
		PackID:            *payload.PackID,
		PackVersionID:     *payload.PackVersionID,
		BannerURL:         payload.BannerURL,
		WebsiteURL:        payload.WebsiteURL,
		DiscordInviteCode: payload.DiscordInviteCode,
		VotifierHost:      payload.VotifierHost,
		VotifierPort:      payload.VotifierPort,
	}
	if payload.Port != nil {
		server.Port = *payload.Port
	} else {
		server.Port = 25565
	}
	if payload.Description != nil {
		server.Description = *payload.Description
	}

	if err := c.servers.CreateServer(server); err != nil {
		respondServerError(ctx, "Failed to create server")
		return
	}

	ctx.JSON(http.StatusOK, server)
}

// UpdateServer godoc
// @Summary Update a server
// @Tags servers
// @Accept json
// @Produce json
// @Param id path int true "Server ID"
// @Param server body validation.ServerPayload true "Fields to update"
// @Success 200 {object} models.Server
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/servers/{id} [put]
func (c *serverController) UpdateServer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	server, err := c.servers.GetServerByID(id)
	if err != nil {
		respondNotFound(ctx, "Server", id)
		return
	}

	var payload validation.ServerPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	if errs := validation.ValidateServer(payload, true); errs.Any() {
		respondValidationErrors(ctx, errs)
		return
	}

	if payload.Name != nil && *payload.Name != "" {
		server.Name = *payload.Name
	}
	if payload.Host != nil && *payload.Host != "" {
		server.Host = *payload.Host
	}
	if payload.Port != nil {
		server.Port = *payload.Port
	}
	if payload.Description != nil {
		server.Description = *payload.Description
	}
	if payload.PackID != nil && *payload.PackID != 0 {
		server.PackID = *payload.PackID
	}
	if payload.PackVersionID != nil && *payload.PackVersionID != 0 {
		server.PackVersionID = *payload.PackVersionID
	}
	if payload.BannerURL != nil {
		server.BannerURL = payload.BannerURL
	}
	if payload.WebsiteURL != nil {
		server.WebsiteURL = payload.WebsiteURL
	}
	if payload.DiscordInviteCode != nil {
		server.DiscordInviteCode = payload.DiscordInviteCode
	}
	if payload.VotifierHost != nil {
		server.VotifierHost = payload.VotifierHost
	}
	if payload.VotifierPort != nil {
		server.VotifierPort = payload.VotifierPort
	}

	if err := c.servers.UpdateServer(server); err != nil {
		respondServerError(ctx, "Failed to update server")
		return
	}

	ctx.JSON(http.StatusOK, server)
}

// DeleteServer godoc
// @Summary Delete a server
// @Tags servers
// @Produce json
// @Param id path int true "Server ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/servers/{id} [delete]
func (c *serverController) DeleteServer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.servers.GetServerByID(id); err != nil {
		respondNotFound(ctx, "Server", id)
		return
	}

	if err := c.servers.DeleteServer(id); err != nil {
		respondServerError(ctx, "Failed to delete server")
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}

// GetFeaturedHistory godoc
// @Summary List the periods a server was featured for
// @Tags servers
// @Produce json
// @Param id path int true "Server ID"
// @Success 200 {array} models.ServerFeaturedHistory
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/servers/{id}/featured-history [get]
func (c *serverController) GetFeaturedHistory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.servers.GetServerByID(id); err != nil {
		respondNotFound(ctx, "Server", id)
		return
	}

	history, err := c.servers.GetFeaturedHistory(id)
	if err != nil {
		respondServerError(ctx, "Failed to retrieve featured history")
		return
	}
	ctx.JSON(http.StatusOK, history)
}
