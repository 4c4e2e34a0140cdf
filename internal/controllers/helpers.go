package controllers

import (
	"net/http"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/atlauncher/atlauncher-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// parseIDParam parses the :id path parameter. On failure it writes the 400
// envelope {status:400, error:{id:["Id must be a valid number"]}} and
// returns false.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, errs := validation.ParseID(ctx.Param(name))
	if errs != nil {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(errs))
		return 0, false
	}
	return uint(id), true
}

// respondValidationErrors writes the aggregated 400 field-error envelope.
func respondValidationErrors(ctx *gin.Context, errs validation.FieldErrors) {
	ctx.JSON(http.StatusBadRequest, models.NewValidationError(errs))
}

// respondNotFound writes the 404 envelope, e.g. "User with ID of 42 not found."
func respondNotFound(ctx *gin.Context, resource string, id uint) {
	ctx.JSON(http.StatusNotFound, models.NewNotFoundError(resource, int64(id)))
}

// respondServerError writes the 500 envelope for storage failures.
func respondServerError(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusInternalServerError, models.NewAPIError(http.StatusInternalServerError, message))
}

// respondBadRequest writes a 400 envelope with a plain string message.
func respondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, models.NewAPIError(http.StatusBadRequest, message))
}
