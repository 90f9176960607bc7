package repositories

import (
	"errors"

	"hotel-management-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OccupantRepository interface {
	Create(tx *gorm.DB, occupant *models.Occupant) error
	GetByID(id uuid.UUID) (*models.Occupant, error)
}

type occupantRepository struct {
	db *gorm.DB
}

func NewOccupantRepository(db *gorm.DB) OccupantRepository {
	return &occupantRepository{db: db}
}

// Create inserts the occupant snapshot. Occupants are immutable once linked
// to a reservation; there is deliberately no update method here.
func (r *occupantRepository) Create(tx *gorm.DB, occupant *models.Occupant) error {
	return tx.Create(occupant).Error
}

func (r *occupantRepository) GetByID(id uuid.UUID) (*models.Occupant, error) {
	var occupant models.Occupant
	err := r.db.First(&occupant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &occupant, nil
}
