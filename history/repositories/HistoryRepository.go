package repositories

import (
	"strings"

	"hotel-management-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	Append(tx *gorm.DB, entry *models.HistoryEntry) error
	GetByReservation(reservationID uuid.UUID) ([]models.HistoryEntry, error)
	GetRecentByReservation(reservationID uuid.UUID, limit int) ([]models.HistoryEntry, error)
	GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.HistoryEntry, int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Append inserts one immutable history entry. It takes the mutating
// operation's transaction: a failed mutation never leaves an orphan audit
// entry, and a committed mutation never skips its entry.
func (r *historyRepository) Append(tx *gorm.DB, entry *models.HistoryEntry) error {
	return tx.Create(entry).Error
}

// GetByReservation returns a reservation's full trail, oldest first.
func (r *historyRepository) GetByReservation(reservationID uuid.UUID) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.db.
		Where("reservation_id = ?", reservationID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

// GetRecentByReservation returns the newest entries first, for the
// recent-activity panel on the reservation view.
func (r *historyRepository) GetRecentByReservation(reservationID uuid.UUID, limit int) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.db.
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// GetFiltered serves the global audit view, paginated.
func (r *historyRepository) GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.HistoryEntry, int64, error) {
	var entries []models.HistoryEntry
	var total int64

	db := r.db.Model(&models.HistoryEntry{})

	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "reservation_id":
			db = db.Where("reservation_id = ?", value)
		case "action":
			db = db.Where("action = ?", strings.ToUpper(value))
		case "actor_id":
			db = db.Where("actor_id = ?", value)
		case "start_date":
			db = db.Where("Date(created_at) >= ?", value)
		case "end_date":
			db = db.Where("Date(created_at) <= ?", value)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
