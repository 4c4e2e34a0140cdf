package controllers

import (
	"fmt"
	"net/http"

	"github.com/atlauncher/atlauncher-api/internal/middleware"
	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/atlauncher/atlauncher-api/internal/services"
	"github.com/atlauncher/atlauncher-api/internal/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserController handles HTTP requests related to user accounts
type UserController interface {
	// GetAllUsers retrieves all users
	GetAllUsers(ctx *gin.Context)
	// GetUserByID retrieves a user by their ID
	GetUserByID(ctx *gin.Context)
	// CreateUser creates a new user
	CreateUser(ctx *gin.Context)
	// UpdateUser partially updates an existing user
	UpdateUser(ctx *gin.Context)
	// DeleteUser deletes a user by their ID
	DeleteUser(ctx *gin.Context)
	// AttachRole grants a role to a user
	AttachRole(ctx *gin.Context)
	// DetachRole removes a role from a user
	DetachRole(ctx *gin.Context)
}

type userController struct {
	users services.UserService
	roles services.RoleService
}

// NewUserController creates a new instance of UserController
func NewUserController(users services.UserService, roles services.RoleService) UserController {
	return &userController{users: users, roles: roles}
}

// GetAllUsers godoc
// @Summary Get all users
// @Description Get a list of all users in the system
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/users [get]
func (c *userController) GetAllUsers(ctx *gin.Context) {
	users, err := c.users.GetAllUsers()
	if err != nil {
		respondServerError(ctx, "Failed to retrieve users")
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID godoc
// @Summary Get user by ID
// @Description Get a single user by their ID
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/users/{id} [get]
func (c *userController) GetUserByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.users.GetUserByID(id)
	if err != nil {
		respondNotFound(ctx, "User", id)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a user
// @Description Create a new user with the input payload
// @Tags users
// @Accept json
// @Produce json
// @Param user body validation.UserPayload true "User object"
// @Success 200 {object} models.User
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/users [post]
func (c *userController) CreateUser(ctx *gin.Context) {
	var payload validation.UserPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	if errs := validation.ValidateUser(payload, false); errs.Any() {
		respondValidationErrors(ctx, errs)
		return
	}

	user := &models.User{
		Username: *payload.Username,
		Email:    *payload.Email,
	}

	if err := c.users.CreateUser(user, *payload.Password); err != nil {
		respondServerError(ctx, "Failed to create user")
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Description Partially update a user; the password is re-hashed when present
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body validation.UserPayload true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/users/{id} [put]
func (c *userController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.users.GetUserByID(id)
	if err != nil {
		respondNotFound(ctx, "User", id)
		return
	}

	var payload validation.UserPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	if errs := validation.ValidateUser(payload, true); errs.Any() {
		respondValidationErrors(ctx, errs)
		return
	}

	if payload.Username != nil && *payload.Username != "" {
		user.Username = *payload.Username
	}
	if payload.Email != nil && *payload.Email != "" {
		user.Email = *payload.Email
	}

	var newPassword *string
	if payload.Password != nil && *payload.Password != "" {
		newPassword = payload.Password
	}

	if err := c.users.UpdateUser(user, newPassword); err != nil {
		respondServerError(ctx, "Failed to update user")
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Delete a user by their ID
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /v1/users/{id} [delete]
func (c *userController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.users.GetUserByID(id); err != nil {
		respondNotFound(ctx, "User", id)
		return
	}

	if err := c.users.DeleteUser(id); err != nil {
		respondServerError(ctx, "Failed to delete user")
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}

// AttachRole godoc
// @Summary Grant a role to a user
// @Description Grant the named role to a user, recording who granted it
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param role body object{role=string} true "Role name"
// @Success 200 {array} models.Role
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/users/{id}/roles [post]
func (c *userController) AttachRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.users.GetUserByID(id); err != nil {
		respondNotFound(ctx, "User", id)
		return
	}

	var payload struct {
		Role string `json:"role"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil || payload.Role == "" {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	role, err := c.roles.GetRoleByName(payload.Role)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(http.StatusNotFound,
			fmt.Sprintf("Role with name of %s not found.", payload.Role)))
		return
	}

	var grantedBy *uint
	if granterID := ctx.GetUint(middleware.ContextUserID); granterID != 0 {
		grantedBy = &granterID
	}

	if err := c.users.AttachRole(id, role.ID, grantedBy); err != nil {
		if err == services.ErrRoleAlreadyAttached {
			respondBadRequest(ctx, "User already has this role")
			return
		}
		respondServerError(ctx, "Failed to attach role")
		return
	}

	roles, err := c.users.GetUserRoles(id)
	if err != nil {
		respondServerError(ctx, "Failed to retrieve roles")
		return
	}
	ctx.JSON(http.StatusOK, roles)
}

// DetachRole godoc
// @Summary Remove a role from a user
// @Description Remove the given role from a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param roleId path int true "Role ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /v1/users/{id}/roles/{roleId} [delete]
func (c *userController) DetachRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	roleID, ok := parseIDParam(ctx, "roleId")
	if !ok {
		return
	}

	if err := c.users.DetachRole(id, roleID); err != nil {
		if err == gorm.ErrRecordNotFound {
			respondNotFound(ctx, "Role", roleID)
			return
		}
		respondServerError(ctx, "Failed to detach role")
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}
