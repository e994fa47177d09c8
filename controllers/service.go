package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/topshelfent/booking-api/models"
	"github.com/topshelfent/booking-api/utils"
)

// ServiceController is the event-package catalog: public listing for the
// marketing site, owner-only mutations.
type ServiceController struct {
	db *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{db: db}
}

// GetAllServices returns all event packages
func (svc *ServiceController) GetAllServices(c *fiber.Ctx) error {
	var services []models.Service
	if err := svc.db.Order("price").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to fetch services", err))
	}
	return c.JSON(services)
}

func (svc *ServiceController) GetService(c *fiber.Ctx) error {
	id := c.Params("id")
	var service models.Service
	if err := svc.db.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.NewErrorResponse("Service not found", err))
	}
	return c.JSON(service)
}

// CreateService creates a new event package
func (svc *ServiceController) CreateService(c *fiber.Ctx) error {
	service := new(models.Service)
	if err := c.BodyParser(service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}
	if service.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Name is required", nil))
	}

	service.ProviderID = c.Locals("userID").(uint)
	if err := svc.db.Create(service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to create service", err))
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService updates an event package
func (svc *ServiceController) UpdateService(c *fiber.Ctx) error {
	id := c.Params("id")
	var existing models.Service
	if err := svc.db.First(&existing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.NewErrorResponse("Service not found", err))
	}
	if existing.ProviderID != c.Locals("userID").(uint) {
		return c.Status(fiber.StatusForbidden).JSON(utils.NewErrorResponse("Service belongs to another user", nil))
	}

	input := new(models.Service)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.NewErrorResponse("Failed to parse request body", err))
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.DurationHours = input.DurationHours
	existing.IsPopular = input.IsPopular
	if err := svc.db.Save(&existing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to update service", err))
	}
	return c.JSON(existing)
}

// DeleteService deletes an event package
func (svc *ServiceController) DeleteService(c *fiber.Ctx) error {
	id := c.Params("id")
	var service models.Service
	if err := svc.db.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.NewErrorResponse("Service not found", err))
	}
	if service.ProviderID != c.Locals("userID").(uint) {
		return c.Status(fiber.StatusForbidden).JSON(utils.NewErrorResponse("Service belongs to another user", nil))
	}

	if err := svc.db.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.NewErrorResponse("Failed to delete service", err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
