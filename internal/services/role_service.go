package services

import (
	"github.com/atlauncher/atlauncher-api/internal/models"
	"gorm.io/gorm"
)

// RoleService provides methods to manage roles
type RoleService interface {
	GetAllRoles() ([]models.Role, error)
	GetRoleByID(id uint) (*models.Role, error)
	GetRoleByName(name string) (*models.Role, error)
	CreateRole(role *models.Role) error
	DeleteRole(id uint) error
}

type roleService struct {
	db *gorm.DB
}

// NewRoleService creates a new instance of RoleService
func NewRoleService(db *gorm.DB) RoleService {
	return &roleService{db: db}
}

func (s *roleService) GetAllRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *roleService) GetRoleByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := s.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *roleService) GetRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := s.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *roleService) CreateRole(role *models.Role) error {
	return s.db.Create(role).Error
}

func (s *roleService) DeleteRole(id uint) error {
	return s.db.Delete(&models.Role{}, id).Error
}
