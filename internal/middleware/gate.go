package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/atlauncher/atlauncher-api/internal/auth"
	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Context keys set by Authenticate for downstream middleware and handlers.
const (
	ContextUserID   = "userID"
	ContextClientID = "clientID"
	ContextScopes   = "tokenScopes"
)

// RoleLoader loads a user's current roles. The gate loads roles fresh on
// every request so revoking a role takes effect immediately.
type RoleLoader interface {
	GetUserRoles(userID uint) ([]models.Role, error)
}

// Authenticate resolves the bearer token from the Authorization header into a
// live access token record and stores the principal on the request context.
// Requests with a missing, unknown, expired or revoked token are rejected
// with 401.
//
// The full gate for a protected route is Authenticate, then RequireRole, then
// RequireScope, in that order; the first failing check aborts the request.
func Authenticate(resolver auth.TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthenticated(c)
			return
		}

		resolved, err := resolver.ResolveAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				abortUnauthenticated(c)
				return
			}
			abortServerError(c, err)
			return
		}

		c.Set(ContextUserID, resolved.UserID)
		c.Set(ContextClientID, resolved.ClientID)
		c.Set(ContextScopes, resolved.Scopes)

		c.Next()
	}
}

// RequireRole checks that the authenticated principal holds the named role.
// Roles are loaded fresh from storage per request, never from token claims.
//
// Denials respond with status 500, matching the long-observed behavior of the
// platform; clients depend on the body's error string, not the status code.
func RequireRole(roles RoleLoader, required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(ContextUserID)
		if userID == 0 {
			abortUnauthenticated(c)
			return
		}

		userRoles, err := roles.GetUserRoles(userID)
		if err != nil {
			abortServerError(c, err)
			return
		}

		for _, role := range userRoles {
			if role.Name == required {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusInternalServerError, models.NewAPIError(http.StatusInternalServerError,
			fmt.Sprintf("User doesn't have required role. '%s' role is needed.", required)))
		c.Abort()
	}
}

// RequireScope checks that the resolved token's granted scope contains the
// required scope. The test is exact string membership over the delimited
// scope list; scopes are hierarchical by naming convention only and no
// prefix or wildcard matching is done.
func RequireScope(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		granted := c.GetString(ContextScopes)

		if !scopeGranted(granted, required) {
			c.JSON(http.StatusInternalServerError, models.NewAPIError(http.StatusInternalServerError,
				fmt.Sprintf("Invalid scope on token. Scope '%s' is needed.", required)))
			c.Abort()
			return
		}

		c.Next()
	}
}

// scopeGranted reports whether required appears verbatim among the granted
// scope tokens. Granted scopes are delimited by spaces or commas.
func scopeGranted(granted, required string) bool {
	for _, scope := range strings.FieldsFunc(granted, func(r rune) bool {
		return r == ' ' || r == ','
	}) {
		if scope == required {
			return true
		}
	}
	return false
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized, "Unauthenticated."))
	c.Abort()
}

func abortServerError(c *gin.Context, err error) {
	log.WithError(err).Error("Unhandled error while evaluating request gate")
	c.JSON(http.StatusInternalServerError, models.NewAPIError(http.StatusInternalServerError, err.Error()))
	c.Abort()
}
