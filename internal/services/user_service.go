package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"gorm.io/gorm"
)

// ErrRoleAlreadyAttached is returned when attaching a role a user already has.
var ErrRoleAlreadyAttached = errors.New("user already has this role")

// UserService provides methods to manage user accounts
type UserService interface {
	// GetAllUsers retrieves all users
	GetAllUsers() ([]models.User, error)
	// GetUserByID retrieves a user by their ID
	GetUserByID(id uint) (*models.User, error)
	// GetUserByEmail retrieves a user by their email
	GetUserByEmail(email string) (*models.User, error)
	// CreateUser creates a user, hashing the given plaintext password exactly once
	CreateUser(user *models.User, password string) error
	// UpdateUser persists changes to a user; when newPassword is non-nil the
	// credential is re-hashed
	UpdateUser(user *models.User, newPassword *string) error
	// DeleteUser deletes a user by their ID
	DeleteUser(id uint) error
	// GetUserRoles loads the user's current roles fresh from storage
	GetUserRoles(userID uint) ([]models.Role, error)
	// AttachRole grants a role to a user, recording who granted it
	AttachRole(userID, roleID uint, grantedBy *uint) error
	// DetachRole removes a role from a user
	DetachRole(userID, roleID uint) error
}

type userService struct {
	db         *gorm.DB
	bcryptCost int
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB, bcryptCost int) UserService {
	return &userService{db: db, bcryptCost: bcryptCost}
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) CreateUser(user *models.User, password string) error {
	if err := user.SetPassword(password, s.bcryptCost); err != nil {
		return err
	}

	if user.VerificationCode == "" {
		code, err := generateVerificationCode()
		if err != nil {
			return err
		}
		user.VerificationCode = code
	}

	return s.db.Create(user).Error
}

func (s *userService) UpdateUser(user *models.User, newPassword *string) error {
	if newPassword != nil {
		if err := user.SetPassword(*newPassword, s.bcryptCost); err != nil {
			return err
		}
	}

	return s.db.Save(user).Error
}

func (s *userService) DeleteUser(id uint) error {
	return s.db.Delete(&models.User{}, id).Error
}

func (s *userService) GetUserRoles(userID uint) ([]models.Role, error) {
	var roles []models.Role
	err := s.db.
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *userService) AttachRole(userID, roleID uint, grantedBy *uint) error {
	var existing models.UserRole
	if err := s.db.Where("user_id = ? AND role_id = ?", userID, roleID).First(&existing).Error; err == nil {
		return ErrRoleAlreadyAttached
	}

	return s.db.Create(&models.UserRole{
		UserID:    userID,
		RoleID:    roleID,
		CreatedBy: grantedBy,
	}).Error
}

func (s *userService) DetachRole(userID, roleID uint) error {
	result := s.db.Where("user_id = ? AND role_id = ?", userID, roleID).Delete(&models.UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// generateVerificationCode returns a 128 character hex string used to verify
// new accounts.
func generateVerificationCode() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
