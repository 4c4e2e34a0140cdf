package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/atlauncher/atlauncher-api/internal/auth"
	"github.com/atlauncher/atlauncher-api/internal/middleware"
	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/atlauncher/atlauncher-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupAPITest builds an in-memory database and a router with the same gate
// chain the application uses for the user routes.
func setupAPITest(t *testing.T) (*gorm.DB, *gin.Engine) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{}, &models.Role{}, &models.UserRole{},
		&models.OAuthToken{},
		&models.Pack{}, &models.PackVersion{}, &models.MinecraftVersion{}, &models.LauncherTag{},
		&models.Server{}, &models.ServerFeaturedHistory{},
	)
	require.NoError(t, err)

	users := services.NewUserService(db, bcrypt.MinCost)
	roles := services.NewRoleService(db)
	packs := services.NewPackService(db)
	servers := services.NewServerService(db)
	userController := NewUserController(users, roles)
	selfController := NewSelfController(users)
	packController := NewPackController(packs)
	serverController := NewServerController(servers)
	resolver := auth.NewTokenResolver(db)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/v1")
	v1.Use(middleware.Authenticate(resolver))
	{
		v1.GET("/self", middleware.RequireScope("self:read"), selfController.GetSelf)

		group := v1.Group("/users")
		group.Use(middleware.RequireRole(users, "admin"))
		{
			group.GET("", middleware.RequireScope("admin:read"), userController.GetAllUsers)
			group.GET("/:id", middleware.RequireScope("admin:read"), userController.GetUserByID)
			group.POST("", middleware.RequireScope("admin:write"), userController.CreateUser)
			group.PUT("/:id", middleware.RequireScope("admin:write"), userController.UpdateUser)
			group.DELETE("/:id", middleware.RequireScope("admin:write"), userController.DeleteUser)
			group.POST("/:id/roles", middleware.RequireScope("admin:write"), userController.AttachRole)
			group.DELETE("/:id/roles/:roleId", middleware.RequireScope("admin:write"), userController.DetachRole)
		}

		packGroup := v1.Group("/packs")
		packGroup.Use(middleware.RequireRole(users, "admin"))
		{
			packGroup.GET("", middleware.RequireScope("packs:read"), packController.GetAllPacks)
			packGroup.GET("/:id", middleware.RequireScope("packs:read"), packController.GetPackByID)
			packGroup.POST("", middleware.RequireScope("packs:write"), packController.CreatePack)
			packGroup.PUT("/:id", middleware.RequireScope("packs:write"), packController.UpdatePack)
			packGroup.DELETE("/:id", middleware.RequireScope("packs:write"), packController.DeletePack)
			packGroup.GET("/:id/versions", middleware.RequireScope("packs:read"), packController.GetPackVersions)
			packGroup.POST("/:id/versions", middleware.RequireScope("packs:write"), packController.CreatePackVersion)
		}

		serverGroup := v1.Group("/servers")
		serverGroup.Use(middleware.RequireRole(users, "admin"))
		{
			serverGroup.GET("", middleware.RequireScope("servers:read"), serverController.GetAllServers)
			serverGroup.GET("/:id", middleware.RequireScope("servers:read"), serverController.GetServerByID)
			serverGroup.POST("", middleware.RequireScope("servers:write"), serverController.CreateServer)
			serverGroup.PUT("/:id", middleware.RequireScope("servers:write"), serverController.UpdateServer)
			serverGroup.DELETE("/:id", middleware.RequireScope("servers:write"), serverController.DeleteServer)
			serverGroup.GET("/:id/featured-history", middleware.RequireScope("servers:read"), serverController.GetFeaturedHistory)
		}
	}

	return db, router
}

// seedAdmin creates an admin user and a live access token granting the given
// scopes, returning the user and the bearer string.
func seedAdmin(t *testing.T, db *gorm.DB, scopes string) (*models.User, string) {
	user := &models.User{Username: "test", Email: "test@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	role := &models.Role{Name: "admin"}
	require.NoError(t, db.Create(role).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error)

	uid := strconv.FormatUint(uint64(user.ID), 10)
	access := "test-access-token"
	require.NoError(t, db.Create(&models.OAuthToken{
		ClientID:    "test-client",
		UserID:      &uid,
		AccessToken: access,
		Scopes:      scopes,
		ExpiresAt:   time.Now().Add(time.Hour),
	}).Error)

	return user, access
}

func apiRequest(router *gin.Engine, method, path, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAllUsers(t *testing.T) {
	db, router := setupAPITest(t)
	_, token := seedAdmin(t, db, "admin:read")

	w := apiRequest(router, "GET", "/v1/users", token, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "test", users[0]["username"])
	assert.Equal(t, "test@example.com", users[0]["email"])

	// The password hash is never serialized
	_, present := users[0]["password"]
	assert.False(t, present)
}

func TestGetUserByIDNotFound(t *testing.T) {
	db, router := setupAPITest(t)
	_, token := seedAdmin(t, db, "admin:read")

	w := apiRequest(router, "GET", "/v1/users/42", token, "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "User with ID of 42 not found.", body["error"])
}

func TestGetUserByIDInvalid(t *testing.T) {
	db, router := setupAPITest(t)
	_, token := seedAdmin(t, db, "admin:read")

	for _, bad := range []string{"bad", "-12", "0"} {
		w := apiRequest(router, "GET", "/v1/users/"+bad, token, "")

		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", bad)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(400), body["status"])
		fields := body["error"].(map[string]interface{})
		assert.Equal(t, []interface{}{"Id must be a valid number"}, fields["id"])
	}
}

func TestCreateUser(t *testing.T) {
	db, router := setupAPITest(t)
	_, token := seedAdmin(t, db, "admin:write")

	w := apiRequest(router, "POST", "/v1/users", token,
		`{"username":"newuser","email":"new@example.com","password":"password"}`)

	// Creation responds 200, not 201
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "newuser", body["username"])
	assert.NotZero(t, body["id"])
	_, present := body["password"]
	assert.False(t, present)

	var stored models.User
	require.NoError(t, db.Where("username = ?", "newuser").First(&stored).Error)
	assert.True(t, stored.CheckPassword("password"))
}

func TestCreateUserValidationErrors(t *testing.T) {
	db, router := setupAPITest(t)
	_, token := seedAdmin(t, db, "admin:write")

	w := apiRequest(router, "POST", "/v1/users", token,
		`{"username":"a!","email":"bad","password":"x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(400), body["status"])

	fields := body["error"].(map[string]interface{})
	assert.Equal(t, []interface{}{
		"Username must be at least 4 characters",
		"Username can only contain letters, numbers, underscores and dashes",
	}, fields["username"])
	assert.Equal(t, []interface{}{"Email is not a valid email"}, fields["email"])
	assert.Equal(t, []interface{}{"Password must be at least 6 characters"}, fields["password"])
}

func TestCreateUserReservedUsername(t *testing.T) {
	db, router := setupAPITest(t)
	_, token := seedAdmin(t, db, "admin:write")

	w := apiRequest(router, "POST", "/v1/users", token,
		`{"username":"admin","email":"admin@example.com","password":"password"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	fields := body["error"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Username is not allowed"}, fields["username"])
}

func TestUpdateUserPartial(t *testing.T) {
	db, router := setupAPITest(t)
	admin, token := seedAdmin(t, db, "admin:read admin:write")

	originalHash := admin.Password

	w := apiRequest(router, "PUT", "/v1/users/"+strconv.Itoa(int(admin.ID)), token,
		`{"email":"changed@example.com"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, db.First(&stored, admin.ID).Error)
	assert.Equal(t, "changed@example.com", stored.Email)
	assert.Equal(t, "test", stored.Username)
	// Password untouched when not in the payload
	assert.Equal(t, originalHash, stored.Password)
}

func TestDeleteUser(t *testing.T) {
	db, router := setupAPITest(t)
	_, token := seedAdmin(t, db, "admin:write")

	victim := &models.User{Username: "victim", Email: "victim@example.com", Password: "x"}
	require.NoError(t, db.Create(victim).Error)

	w := apiRequest(router, "DELETE", "/v1/users/"+strconv.Itoa(int(victim.ID)), token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	err := db.First(&models.User{}, victim.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAttachRole(t *testing.T) {
	db, router := setupAPITest(t)
	admin, token := seedAdmin(t, db, "admin:write")

	target := &models.User{Username: "target", Email: "target@example.com", Password: "x"}
	require.NoError(t, db.Create(target).Error)
	require.NoError(t, db.Create(&models.Role{Name: "moderator"}).Error)

	w := apiRequest(router, "POST", "/v1/users/"+strconv.Itoa(int(target.ID))+"/roles", token,
		`{"role":"moderator"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var roles []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roles))
	require.Len(t, roles, 1)
	assert.Equal(t, "moderator", roles[0]["name"])

	// The grant is audited with the granting user
	var pivot models.UserRole
	require.NoError(t, db.Where("user_id = ?", target.ID).First(&pivot).Error)
	require.NotNil(t, pivot.CreatedBy)
	assert.Equal(t, admin.ID, *pivot.CreatedBy)
}

func TestAttachUnknownRole(t *testing.T) {
	db, router := setupAPITest(t)
	admin, token := seedAdmin(t, db, "admin:write")

	w := apiRequest(router, "POST", "/v1/users/"+strconv.Itoa(int(admin.ID))+"/roles", token,
		`{"role":"nonexistent"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Role with name of nonexistent not found.", body["error"])
}

func TestDetachRole(t *testing.T) {
	db, router := setupAPITest(t)
	admin, token := seedAdmin(t, db, "admin:write")

	role := &models.Role{Name: "moderator"}
	require.NoError(t, db.Create(role).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: admin.ID, RoleID: role.ID}).Error)

	path := "/v1/users/" + strconv.Itoa(int(admin.ID)) + "/roles/" + strconv.Itoa(int(role.ID))
	w := apiRequest(router, "DELETE", path, token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Detaching the same role again is a 404
	w = apiRequest(router, "DELETE", path, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSelf(t *testing.T) {
	db, router := setupAPITest(t)
	admin, token := seedAdmin(t, db, "self:read")

	w := apiRequest(router, "GET", "/v1/self", token, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(admin.ID), body["id"])
	assert.Equal(t, "test", body["username"])
	_, present := body["password"]
	assert.False(t, present)
}

func TestUsersRouteRejectsWrongScope(t *testing.T) {
	db, router := setupAPITest(t)
	_, token := seedAdmin(t, db, "admin:read")

	// Token only carries admin:read; writes are rejected by the scope check
	w := apiRequest(router, "POST", "/v1/users", token,
		`{"username":"newuser","email":"new@example.com","password":"password"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid scope on token. Scope 'admin:write' is needed.", body["error"])
}
