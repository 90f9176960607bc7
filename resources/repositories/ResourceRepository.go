package repositories

import (
	"errors"
	"strings"

	"hotel-management-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceRepository interface {
	Create(resource *models.Resource) (*models.Resource, error)
	Save(tx *gorm.DB, resource *models.Resource) error
	GetByID(id uuid.UUID) (*models.Resource, error)
	GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Resource, error)
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status models.ResourceStatus) error
	GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.Resource, int64, error)
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(resource *models.Resource) (*models.Resource, error) {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	err := r.db.Create(resource).Error
	return resource, err
}

func (r *resourceRepository) Save(tx *gorm.DB, resource *models.Resource) error {
	return tx.Save(resource).Error
}

func (r *resourceRepository) GetByID(id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.First(&resource, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resource, nil
}

// GetByIDForUpdate locks the resource row for the remainder of the enclosing
// transaction. Two concurrent bookings of the same resource serialize here,
// so the overlap check and the insert behave as one linearizable step.
func (r *resourceRepository) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&resource, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) UpdateStatus(tx *gorm.DB, id uuid.UUID, status models.ResourceStatus) error {
	return tx.Model(&models.Resource{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// GetFiltered retrieves resources with filtering and pagination.
func (r *resourceRepository) GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.Resource, int64, error) {
	var resources []models.Resource
	var total int64

	db := r.db.Model(&models.Resource{})

	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "type":
			db = db.Where("type = ?", strings.ToUpper(value))
		case "status":
			db = db.Where("status = ?", strings.ToUpper(value))
		case "category":
			db = db.Where("category ILIKE ?", "%"+value+"%")
		case "min_capacity":
			db = db.Where("capacity >= ?", value)
		case "active":
			if strings.ToLower(value) == "true" {
				db = db.Where("is_active = ?", true)
			} else if strings.ToLower(value) == "false" {
				db = db.Where("is_active = ?", false)
			}
		case "search":
			db = db.Where("name ILIKE ? OR code ILIKE ?", "%"+value+"%", "%"+value+"%")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("code ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&resources).Error
	if err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}
