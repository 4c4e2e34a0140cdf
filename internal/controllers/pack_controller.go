package controllers

import (
	"net/http"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/atlauncher/atlauncher-api/internal/services"
	"github.com/atlauncher/atlauncher-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// PackController handles HTTP requests related to packs and their versions
type PackController interface {
	GetAllPacks(ctx *gin.Context)
	GetPackByID(ctx *gin.Context)
	CreatePack(ctx *gin.Context)
	UpdatePack(ctx *gin.Context)
	DeletePack(ctx *gin.Context)
	GetPackVersions(ctx *gin.Context)
	CreatePackVersion(ctx *gin.Context)
}

type packController struct {
	packs services.PackService
}

// NewPackController creates a new instance of PackController
func NewPackController(packs services.PackService) PackController {
	return &packController{packs: packs}
}

// GetAllPacks godoc
// @Summary Get all packs
// @Tags packs
// @Produce json
// @Success 200 {array} models.Pack
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/packs [get]
func (c *packController) GetAllPacks(ctx *gin.Context) {
	packs, err := c.packs.GetAllPacks()
	if err != nil {
		respondServerError(ctx, "Failed to retrieve packs")
		return
	}
	ctx.JSON(http.StatusOK, packs)
}

// GetPackByID godoc
// @Summary Get pack by ID
// @Tags packs
// @Produce json
// @Param id path int true "Pack ID"
// @Success 200 {object} models.Pack
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/packs/{id} [get]
func (c *packController) GetPackByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	pack, err := c.packs.GetPackByID(id)
	if err != nil {
		respondNotFound(ctx, "Pack", id)
		return
	}
	ctx.JSON(http.StatusOK, pack)
}

// CreatePack godoc
// @Summary Create a pack
// @Tags packs
// @Accept json
// @Produce json
// @Param pack body validation.PackPayload true "Pack object"
// @Success 200 {object} models.Pack
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/packs [post]
func (c *packController) CreatePack(ctx *gin.Context) {
	var payload validation.PackPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	if errs := validation.ValidatePack(payload, false); errs.Any() {
		respondValidationErrors(ctx, errs)
		return
	}

	pack := &models.Pack{
		Name:        *payload.Name,
		Description: payload.Description,
	}
	if payload.Type != nil {
		pack.Type = *payload.Type
	}
	if payload.Enabled != nil {
		pack.Enabled = *payload.Enabled
	} else {
		pack.Enabled = true
	}

	if err := c.packs.CreatePack(pack); err != nil {
		respondServerError(ctx, "Failed to create pack")
		return
	}

	ctx.JSON(http.StatusOK, pack)
}

// UpdatePack godoc
// @Summary Update a pack
// @Tags packs
// @Accept json
// @Produce json
// @Param id path int true "Pack ID"
// @Param pack body validation.PackPayload true "Fields to update"
// @Success 200 {object} models.Pack
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/packs/{id} [put]
func (c *packController) UpdatePack(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	pack, err := c.packs.GetPackByID(id)
	if err != nil {
		respondNotFound(ctx, "Pack", id)
		return
	}

	var payload validation.PackPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	if errs := validation.ValidatePack(payload, true); errs.Any() {
		respondValidationErrors(ctx, errs)
		return
	}

	if payload.Name != nil && *payload.Name != "" {
		pack.Name = *payload.Name
		pack.SafeName = services.SafeName(*payload.Name)
	}
	if payload.Description != nil {
		pack.Description = payload.Description
	}
	if payload.Type != nil && *payload.Type != "" {
		pack.Type = *payload.Type
	}
	if payload.Enabled != nil {
		pack.Enabled = *payload.Enabled
	}

	if err := c.packs.UpdatePack(pack); err != nil {
		respondServerError(ctx, "Failed to update pack")
		return
	}

	ctx.JSON(http.StatusOK, pack)
}

// DeletePack godoc
// @Summary Delete a pack
// @Tags packs
// @Produce json
// @Param id path int true "Pack ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/packs/{id} [delete]
func (c *packController) DeletePack(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.packs.GetPackByID(id); err != nil {
		respondNotFound(ctx, "Pack", id)
		return
	}

	if err := c.packs.DeletePack(id); err != nil {
		respondServerError(ctx, "Failed to delete pack")
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}

// GetPackVersions godoc
// @Summary List versions of a pack
// @Tags packs
// @Produce json
// @Param id path int true "Pack ID"
// @Success 200 {array} models.PackVersion
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/packs/{id}/versions [get]
func (c *packController) GetPackVersions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.packs.GetPackByID(id); err != nil {
		respondNotFound(ctx, "Pack", id)
		return
	}

	versions, err := c.packs.GetPackVersions(id)
	if err != nil {
		respondServerError(ctx, "Failed to retrieve pack versions")
		return
	}
	ctx.JSON(http.StatusOK, versions)
}

// CreatePackVersion godoc
// @Summary Create a version for a pack
// @Tags packs
// @Accept json
// @Produce json
// @Param id path int true "Pack ID"
// @Param version body validation.PackVersionPayload true "Version object"
// @Success 200 {object} models.PackVersion
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/packs/{id}/versions [post]
func (c *packController) CreatePackVersion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.packs.GetPackByID(id); err != nil {
		respondNotFound(ctx, "Pack", id)
		return
	}

	var payload validation.PackVersionPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	if errs := validation.ValidatePackVersion(payload); errs.Any() {
		respondValidationErrors(ctx, errs)
		return
	}

	version := &models.PackVersion{
		PackID:             id,
		Version:            *payload.Version,
		MinecraftVersionID: payload.MinecraftVersionID,
		Changelog:          payload.Changelog,
	}

	if err := c.packs.CreatePackVersion(version); err != nil {
		respondServerError(ctx, "Failed to create pack version")
		return
	}

	ctx.JSON(http.StatusOK, version)
}
