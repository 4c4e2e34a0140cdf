package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type OAuthClient struct {
	ID          string `gorm:"primaryKey"`
	Secret      string `gorm:"not null"`
	Name        string `gorm:"not null"`
	Domain      string
	UserID      uint
	Scopes      string `gorm:"not null"`
	GrantTypes  string
	RedirectURI string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserRole struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null"`
	RoleID    uint `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserRole) TableName() string {
	return "user_roles"
}

func main() {
	dbPath := flag.String("db", "atlauncher.sqlite", "Path to the sqlite database")
	role := flag.String("role", "admin", "Role to grant the development user")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	clientID := "dev-client"
	clientSecret := "dev-secret-123"

	// Check if client already exists
	var existing OAuthClient
	if err := db.Where("id = ?", clientID).First(&existing).Error; err == nil {
		fmt.Println("Development client already exists!")
		fmt.Printf("Client ID: %s\n", clientID)
		fmt.Printf("Client Secret: %s\n", clientSecret)
		return
	}

	userID := getUserIDForRole(db, *role)
	if userID == 0 {
		log.Fatal("Failed to get user ID for role:", *role)
	}

	// Create new client with the full scope set the dev user needs
	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash secret:", err)
	}

	client := OAuthClient{
		ID:          clientID,
		Secret:      string(hash),
		Name:        "Development Client",
		Domain:      "http://localhost",
		UserID:      userID,
		Scopes:      "self:read admin:read admin:write packs:read packs:write servers:read servers:write",
		GrantTypes:  "client_credentials",
		RedirectURI: "",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(&client).Error; err != nil {
		log.Fatal("Failed to create client:", err)
	}

	fmt.Printf("✓ Development OAuth client created for role '%s'!\n", *role)
	fmt.Printf("Client ID: %s\n", clientID)
	fmt.Printf("Client Secret: %s\n", clientSecret)
	fmt.Printf("User ID: %d\n", userID)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://localhost:8080/oauth/token \\\n")
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", clientID)
	fmt.Printf("  -d 'client_secret=%s'\n", clientSecret)
}

// getUserIDForRole gets or creates the development user and makes sure it
// holds the given role
func getUserIDForRole(db *gorm.DB, roleName string) uint {
	var user User
	email := "dev@atlauncher.com"

	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		user = User{
			Username:  "developer",
			Email:     email,
			Password:  string(hash),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal("Failed to create user:", err)
		}
		fmt.Printf("Created user: %s (ID: %d)\n", user.Email, user.ID)
	} else {
		fmt.Printf("Found existing user: %s (ID: %d)\n", user.Email, user.ID)
	}

	var devRole Role
	if err := db.Where("name = ?", roleName).First(&devRole).Error; err != nil {
		devRole = Role{Name: roleName, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		if err := db.Create(&devRole).Error; err != nil {
			log.Fatal("Failed to create role:", err)
		}
		fmt.Printf("Created role: %s (ID: %d)\n", devRole.Name, devRole.ID)
	}

	var pivot UserRole
	if err := db.Where("user_id = ? AND role_id = ?", user.ID, devRole.ID).First(&pivot).Error; err != nil {
		pivot = UserRole{UserID: user.ID, RoleID: devRole.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		if err := db.Create(&pivot).Error; err != nil {
			log.Fatal("Failed to attach role:", err)
		}
		fmt.Printf("Granted '%s' role to user %d\n", devRole.Name, user.ID)
	}

	return user.ID
}
