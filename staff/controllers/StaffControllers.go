package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/db/models"
	"hotel-management-backend/staff/repositories"
	"hotel-management-backend/utils/pagination"
)

type StaffController struct {
	StaffRepo repositories.StaffRepository
}

type createStaffRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// CreateStaffController registers a new back-office account.
func (sc *StaffController) CreateStaffController(c *fiber.Ctx) error {
	var req createStaffRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Invalid request body for CreateStaffController", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "VALIDATION_ERROR",
		})
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "first_name, last_name, email and password are required",
			"code":  "VALIDATION_ERROR",
		})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "password must be at least 8 characters",
			"code":  "VALIDATION_ERROR",
		})
	}

	role := models.StaffRole(strings.ToUpper(req.Role))
	switch role {
	case models.AdminStaffRole, models.ManagerStaffRole, models.FrontDeskStaffRole:
	case "":
		role = models.FrontDeskStaffRole
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role must be ADMIN, MANAGER or FRONT_DESK",
			"code":  "VALIDATION_ERROR",
		})
	}

	var createdBy *string
	if actor, ok := c.Locals("actor_id").(string); ok && actor != "" {
		createdBy = &actor
	}

	staff := &models.Staff{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      role,
		IsActive:  true,
		CreatedBy: createdBy,
	}

	created, err := sc.StaffRepo.CreateStaff(staff)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
				"code":  "VALIDATION_ERROR",
			})
		}
		config.Logger.Error("Failed to create staff account", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create staff account",
			"code":  "INTERNAL_ERROR",
		})
	}

	config.Logger.Info("Staff account created",
		zap.String("email", created.Email),
		zap.String("role", string(created.Role)))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": created,
	})
}

// GetFilteredStaffController lists staff accounts with filters and pagination.
func (sc *StaffController) GetFilteredStaffController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "VALIDATION_ERROR",
		})
	}

	offset := (params.Page - 1) * params.PageSize
	staff, total, err := sc.StaffRepo.GetFilteredStaff(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to list staff accounts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list staff accounts",
			"code":  "INTERNAL_ERROR",
		})
	}

	return c.JSON(pagination.NewPaginatedResponse(c, staff, total, params))
}

// DeactivateStaffController disables an account. The row is kept so the
// staff ID on old audit entries stays resolvable.
func (sc *StaffController) DeactivateStaffController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid staff id",
			"code":  "VALIDATION_ERROR",
		})
	}

	if err := sc.StaffRepo.DeactivateStaff(id.String()); err != nil {
		config.Logger.Error("Failed to deactivate staff account", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to deactivate staff account",
			"code":  "INTERNAL_ERROR",
		})
	}

	config.Logger.Info("Staff account deactivated", zap.String("staff_id", id.String()))

	return c.JSON(fiber.Map{
		"data": fiber.Map{"deactivated": true},
	})
}
