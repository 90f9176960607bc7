package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-management-backend/config"
	"hotel-management-backend/db/models"
	"hotel-management-backend/resources/repositories"
	"hotel-management-backend/utils/pagination"
)

type ResourceController struct {
	ResourceRepo repositories.ResourceRepository
	DB           *gorm.DB
}

type createResourceRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        string          `json:"type"` // ROOM or HALL
	Category    string          `json:"category"`
	Capacity    int             `json:"capacity"`
	BaseRate    decimal.Decimal `json:"base_rate"`
	Floor       *string         `json:"floor,omitempty"`
	Description *string         `json:"description,omitempty"`
	CreatedBy   string          `json:"created_by"`
}

// CreateResourceController registers a new room or hall.
func (rc *ResourceController) CreateResourceController(c *fiber.Ctx) error {
	var req createResourceRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Invalid request body for CreateResourceController", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "VALIDATION_ERROR",
		})
	}

	if req.Code == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "code and name are required",
			"code":  "VALIDATION_ERROR",
		})
	}
	resourceType := models.ResourceType(req.Type)
	if resourceType != models.RoomResourceType && resourceType != models.HallResourceType {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "type must be ROOM or HALL",
			"code":  "VALIDATION_ERROR",
		})
	}
	if !req.BaseRate.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "base_rate must be positive",
			"code":  "VALIDATION_ERROR",
		})
	}

	capacity := req.Capacity
	if capacity < 1 {
		capacity = 1
	}

	resource := &models.Resource{
		Code:        req.Code,
		Name:        req.Name,
		Type:        resourceType,
		Category:    req.Category,
		Capacity:    capacity,
		BaseRate:    req.BaseRate,
		Status:      models.AvailableResourceStatus,
		Floor:       req.Floor,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   req.CreatedBy,
	}

	created, err := rc.ResourceRepo.Create(resource)
	if err != nil {
		config.Logger.Error("Failed to create resource", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create resource",
			"code":  "INTERNAL_ERROR",
		})
	}

	config.Logger.Info("Resource created",
		zap.String("code", created.Code),
		zap.String("type", string(created.Type)))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": created,
	})
}

type updateResourceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Capacity    *int             `json:"capacity,omitempty"`
	BaseRate    *decimal.Decimal `json:"base_rate,omitempty"`
	Status      *string          `json:"status,omitempty"` // AVAILABLE / MAINTENANCE
	IsActive    *bool            `json:"is_active,omitempty"`
	Description *string          `json:"description,omitempty"`
	UpdatedBy   string           `json:"updated_by"`
}

// UpdateResourceController updates master data and the maintenance toggle.
// BOOKED is owned by the reservation engine and cannot be set here.
func (rc *ResourceController) UpdateResourceController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resource id",
			"code":  "VALIDATION_ERROR",
		})
	}

	var req updateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Invalid request body for UpdateResourceController", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "VALIDATION_ERROR",
		})
	}

	resource, err := rc.ResourceRepo.GetByID(id)
	if err != nil {
		config.Logger.Error("Failed to load resource", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load resource",
			"code":  "INTERNAL_ERROR",
		})
	}
	if resource == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
			"code":  "NOT_FOUND",
		})
	}

	if req.Name != nil {
		resource.Name = *req.Name
	}
	if req.Category != nil {
		resource.Category = *req.Category
	}
	if req.Capacity != nil && *req.Capacity >= 1 {
		resource.Capacity = *req.Capacity
	}
	if req.BaseRate != nil && req.BaseRate.IsPositive() {
		resource.BaseRate = *req.BaseRate
	}
	if req.IsActive != nil {
		resource.IsActive = *req.IsActive
	}
	if req.Description != nil {
		resource.Description = req.Description
	}
	if req.Status != nil {
		status := models.ResourceStatus(*req.Status)
		if status != models.AvailableResourceStatus && status != models.MaintenanceResourceStatus {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "status must be AVAILABLE or MAINTENANCE",
				"code":  "VALIDATION_ERROR",
			})
		}
		resource.Status = status
	}
	if req.UpdatedBy != "" {
		resource.UpdatedBy = &req.UpdatedBy
	}

	if err := rc.ResourceRepo.Save(rc.DB, resource); err != nil {
		config.Logger.Error("Failed to update resource", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update resource",
			"code":  "INTERNAL_ERROR",
		})
	}

	config.Logger.Info("Resource updated", zap.String("code", resource.Code))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": resource,
	})
}

// GetFilteredResourcesController lists resources with filters and pagination.
func (rc *ResourceController) GetFilteredResourcesController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "VALIDATION_ERROR",
		})
	}

	offset := (params.Page - 1) * params.PageSize
	resources, total, err := rc.ResourceRepo.GetFiltered(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered resources", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch resources",
			"code":  "INTERNAL_ERROR",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, resources, total, params))
}
