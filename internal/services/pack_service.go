package services

import (
	"regexp"

	"github.com/atlauncher/atlauncher-api/internal/models"
	"gorm.io/gorm"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9-_]`)

// SafeName strips characters that aren't letters, numbers, dashes or
// underscores, producing the launcher-safe name for a pack.
func SafeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "")
}

// PackService provides methods to manage packs and their versions
type PackService interface {
	GetAllPacks() ([]models.Pack, error)
	// GetPackByID retrieves a pack with its launcher tags preloaded
	GetPackByID(id uint) (*models.Pack, error)
	CreatePack(pack *models.Pack) error
	UpdatePack(pack *models.Pack) error
	DeletePack(id uint) error

	GetPackVersions(packID uint) ([]models.PackVersion, error)
	CreatePackVersion(version *models.PackVersion) error
}

type packService struct {
	db *gorm.DB
}

// NewPackService creates a new instance of PackService
func NewPackService(db *gorm.DB) PackService {
	return &packService{db: db}
}

func (s *packService) GetAllPacks() ([]models.Pack, error) {
	var packs []models.Pack
	if err := s.db.Find(&packs).Error; err != nil {
		return nil, err
	}
	return packs, nil
}

func (s *packService) GetPackByID(id uint) (*models.Pack, error) {
	var pack models.Pack
	if err := s.db.Preload("Tags").First(&pack, id).Error; err != nil {
		return nil, err
	}
	return &pack, nil
}

func (s *packService) CreatePack(pack *models.Pack) error {
	if pack.SafeName == "" {
		pack.SafeName = SafeName(pack.Name)
	}
	if pack.Type == "" {
		pack.Type = models.PackTypePrivate
	}
	return s.db.Create(pack).Error
}

func (s *packService) UpdatePack(pack *models.Pack) error {
	return s.db.Save(pack).Error
}

func (s *packService) DeletePack(id uint) error {
	return s.db.Delete(&models.Pack{}, id).Error
}

func (s *packService) GetPackVersions(packID uint) ([]models.PackVersion, error) {
	var versions []models.PackVersion
	if err := s.db.Where("pack_id = ?", packID).Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (s *packService) CreatePackVersion(version *models.PackVersion) error {
	return s.db.Create(version).Error
}
