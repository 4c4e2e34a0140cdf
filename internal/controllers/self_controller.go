package controllers

import (
	"net/http"

	"github.com/atlauncher/atlauncher-api/internal/middleware"
	"github.com/atlauncher/atlauncher-api/internal/services"
	"github.com/gin-gonic/gin"
)

// SelfController handles requests about the authenticated principal
type SelfController interface {
	GetSelf(ctx *gin.Context)
}

type selfController struct {
	users services.UserService
}

// NewSelfController creates a new instance of SelfController
func NewSelfController(users services.UserService) SelfController {
	return &selfController{users: users}
}

// GetSelf godoc
// @Summary Get the authenticated user
// @Description Get the user the access token was issued for
// @Tags self
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /v1/self [get]
func (c *selfController) GetSelf(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.ContextUserID)

	user, err := c.users.GetUserByID(userID)
	if err != nil {
		respondNotFound(ctx, "User", userID)
		return
	}

	ctx.JSON(http.StatusOK, user)
}
