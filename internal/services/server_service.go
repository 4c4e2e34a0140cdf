package services

import (
	"github.com/atlauncher/atlauncher-api/internal/models"
	"gorm.io/gorm"
)

// ServerService provides methods to manage game servers
type ServerService interface {
	GetAllServers() ([]models.Server, error)
	GetServerByID(id uint) (*models.Server, error)
	CreateServer(server *models.Server) error
	UpdateServer(server *models.Server) error
	DeleteServer(id uint) error

	// GetFeaturedHistory lists the periods the server was featured for
	GetFeaturedHistory(serverID uint) ([]models.ServerFeaturedHistory, error)
}

type serverService struct {
	db *gorm.DB
}

// NewServerService creates a new instance of ServerService
func NewServerService(db *gorm.DB) ServerService {
	return &serverService{db: db}
}

func (s *serverService) GetAllServers() ([]models.Server, error) {
	var servers []models.Server
	if err := s.db.Find(&servers).Error; err != nil {
		return nil, err
	}
	return servers, nil
}

func (s *serverService) GetServerByID(id uint) (*models.Server, error) {
	var server models.Server
	if err := s.db.First(&server, id).Error; err != nil {
		return nil, err
	}
	return &server, nil
}

func (s *serverService) CreateServer(server *models.Server) error {
	return s.db.Create(server).Error
}

func (s *serverService) UpdateServer(server *models.Server) error {
	return s.db.Save(server).Error
}

func (s *serverService) DeleteServer(id uint) error {
	return s.db.Delete(&models.Server{}, id).Error
}

func (s *serverService) GetFeaturedHistory(serverID uint) ([]models.ServerFeaturedHistory, error) {
	var history []models.ServerFeaturedHistory
	if err := s.db.Where("server_id = ?", serverID).Order("created_at desc").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
