package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/atlauncher/atlauncher-api/docs" // Import generated docs
	"github.com/atlauncher/atlauncher-api/internal/auth"
	"github.com/atlauncher/atlauncher-api/internal/config"
	"github.com/atlauncher/atlauncher-api/internal/controllers"
	"github.com/atlauncher/atlauncher-api/internal/database"
	"github.com/atlauncher/atlauncher-api/internal/middleware"
	"github.com/atlauncher/atlauncher-api/internal/models"
	"github.com/atlauncher/atlauncher-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config

	userService   services.UserService
	roleService   services.RoleService
	packService   services.PackService
	serverService services.ServerService
	clientService services.ClientService

	userController   controllers.UserController
	packController   controllers.PackController
	serverController controllers.ServerController
	selfController   controllers.SelfController
	clientController *controllers.ClientController

	oauthService  *auth.OAuthService
	tokenResolver auth.TokenResolver
)

// @title ATLauncher API
// @version 1.0
// @description REST API for the modpack distribution platform
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	setupServices()

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  "disable",
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	// The user_roles pivot carries audit columns, so register it explicitly
	// before migrating
	checkPanicErr(db.SetupJoinTable(&models.User{}, "Roles", &models.UserRole{}))

	checkPanicErr(db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Pack{},
		&models.PackVersion{},
		&models.MinecraftVersion{},
		&models.LauncherTag{},
		&models.Server{},
		&models.ServerFeaturedHistory{},
	))

	// OAuth models
	checkPanicErr(db.AutoMigrate(
		&models.OAuthClient{},
		&models.OAuthCode{},
		&models.OAuthToken{},
		&models.OAuthRefreshToken{},
	))

	return db
}

// setupServices wires services, controllers and the OAuth2 server
func setupServices() {
	userService = services.NewUserService(db, configuration.BcryptCost)
	roleService = services.NewRoleService(db)
	packService = services.NewPackService(db)
	serverService = services.NewServerService(db)
	clientService = services.NewClientService(db)

	userController = controllers.NewUserController(userService, roleService)
	packController = controllers.NewPackController(packService)
	serverController = controllers.NewServerController(serverService)
	selfController = controllers.NewSelfController(userService)
	clientController = controllers.NewClientController(clientService, configuration.BcryptCost)

	oauthService = auth.NewOAuthService(db, configuration.JWTSecret,
		time.Duration(configuration.AccessTokenTTLHours)*time.Hour,
		time.Duration(configuration.RefreshTokenTTLHours)*time.Hour)
	tokenResolver = auth.NewTokenResolver(db)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// OAuth2 endpoints
	router.POST("/oauth/token", oauthService.HandleToken)
	router.GET("/oauth/authorize", oauthService.HandleAuthorize)
	router.POST("/oauth/revoke", oauthService.HandleRevoke)

	// Protected API. Every route below runs the gate: token resolution,
	// then the route's required role, then its required scope.
	v1 := router.Group("/v1")
	v1.Use(middleware.Authenticate(tokenResolver))
	{
		v1.GET("/self", middleware.RequireScope("self:read"), selfController.GetSelf)

		users := v1.Group("/users")
		users.Use(middleware.RequireRole(userService, "admin"))
		{
			users.GET("", middleware.RequireScope("admin:read"), userController.GetAllUsers)
			users.GET("/:id", middleware.RequireScope("admin:read"), userController.GetUserByID)
			users.POST("", middleware.RequireScope("admin:write"), userController.CreateUser)
			users.PUT("/:id", middleware.RequireScope("admin:write"), userController.UpdateUser)
			users.DELETE("/:id", middleware.RequireScope("admin:write"), userController.DeleteUser)
			users.POST("/:id/roles", middleware.RequireScope("admin:write"), userController.AttachRole)
			users.DELETE("/:id/roles/:roleId", middleware.RequireScope("admin:write"), userController.DetachRole)
		}

		packs := v1.Group("/packs")
		packs.Use(middleware.RequireRole(userService, "admin"))
		{
			packs.GET("", middleware.RequireScope("packs:read"), packController.GetAllPacks)
			packs.GET("/:id", middleware.RequireScope("packs:read"), packController.GetPackByID)
			packs.POST("", middleware.RequireScope("packs:write"), packController.CreatePack)
			packs.PUT("/:id", middleware.RequireScope("packs:write"), packController.UpdatePack)
			packs.DELETE("/:id", middleware.RequireScope("packs:write"), packController.DeletePack)
			packs.GET("/:id/versions", middleware.RequireScope("packs:read"), packController.GetPackVersions)
			packs.POST("/:id/versions", middleware.RequireScope("packs:write"), packController.CreatePackVersion)
		}

		servers := v1.Group("/servers")
		servers.Use(middleware.RequireRole(userService, "admin"))
		{
			servers.GET("", middleware.RequireScope("servers:read"), serverController.GetAllServers)
			servers.GET("/:id", middleware.RequireScope("servers:read"), serverController.GetServerByID)
			servers.POST("", middleware.RequireScope("servers:write"), serverController.CreateServer)
			servers.PUT("/:id", middleware.RequireScope("servers:write"), serverController.UpdateServer)
			servers.DELETE("/:id", middleware.RequireScope("servers:write"), serverController.DeleteServer)
			servers.GET("/:id/featured-history", middleware.RequireScope("servers:read"), serverController.GetFeaturedHistory)
		}

		// OAuth2 client self-management; ownership is enforced per user
		clients := v1.Group("/clients")
		{
			clients.GET("", clientController.ListClients)
			clients.POST("", clientController.CreateClient)
			clients.DELETE("/:id", clientController.DeleteClient)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "atlauncher-api",
	})
}
