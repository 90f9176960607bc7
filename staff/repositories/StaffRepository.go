package repositories

import (
	"errors"
	"fmt"
	"strings"

	"hotel-management-backend/db/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffRepository interface {
	CreateStaff(staff *models.Staff) (*models.Staff, error)
	GetStaffByID(id string) (*models.Staff, error)
	GetStaffByEmail(email string) (*models.Staff, error)
	UpdateStaff(staff *models.Staff) (*models.Staff, error)
	DeactivateStaff(id string) error
	GetFilteredStaff(pageSize int, offset int, filters map[string]string) ([]models.Staff, int64, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (r *staffRepository) CreateStaff(staff *models.Staff) (*models.Staff, error) {
	hashedPassword, err := HashPassword(staff.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Check for an existing account, soft-deleted included: a re-hired staff
	// member gets their old row restored instead of a duplicate email error.
	var existing models.Staff
	err = r.db.Unscoped().Where("email = ?", staff.Email).First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			existing.DeletedAt = gorm.DeletedAt{}
			existing.FirstName = staff.FirstName
			existing.LastName = staff.LastName
			existing.Phone = staff.Phone
			existing.Password = hashedPassword
			existing.Role = staff.Role
			existing.IsActive = staff.IsActive
			existing.CreatedBy = staff.CreatedBy

			if err := r.db.Unscoped().Save(&existing).Error; err != nil {
				return nil, fmt.Errorf("failed to restore soft-deleted staff account: %w", err)
			}
			return &existing, nil
		}
		return nil, fmt.Errorf("a staff account with that email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing staff account: %w", err)
	}

	staff.Password = hashedPassword
	if err := r.db.Create(staff).Error; err != nil {
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) GetStaffByID(id string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.First(&staff, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if !staff.IsActive {
		return nil, fmt.Errorf("staff account is disabled")
	}
	return &staff, nil
}

func (r *staffRepository) GetStaffByEmail(email string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.First(&staff, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) UpdateStaff(staff *models.Staff) (*models.Staff, error) {
	if err := r.db.Save(staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// DeactivateStaff disables the account without deleting it: the staff ID
// stays resolvable for old audit entries.
func (r *staffRepository) DeactivateStaff(id string) error {
	return r.db.Model(&models.Staff{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *staffRepository) GetFilteredStaff(pageSize int, offset int, filters map[string]string) ([]models.Staff, int64, error) {
	var staff []models.Staff
	var total int64

	db := r.db.Model(&models.Staff{})

	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "role":
			db = db.Where("role = ?", strings.ToUpper(value))
		case "active":
			if strings.ToLower(value) == "true" {
				db = db.Where("is_active = ?", true)
			} else if strings.ToLower(value) == "false" {
				db = db.Where("is_active = ?", false)
			}
		case "search":
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
				"%"+value+"%", "%"+value+"%", "%"+value+"%")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&staff).Error
	if err != nil {
		return nil, 0, err
	}

	return staff, total, nil
}
