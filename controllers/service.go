// controllers/service.go
package controllers

import (
	"log/slog"
	"net/http"

	"glamstudio-backend/models"
	"glamstudio-backend/services"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Price       string   `json:"price"`
	Duration    string   `json:"duration"`
	Icon        string   `json:"icon" binding:"required"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
	Price       *string   `json:"price"`
	Duration    *string   `json:"duration"`
	Icon        *string   `json:"icon"`
	IsActive    *bool     `json:"is_active"`
}

type ServiceController struct {
	services *services.CollectionService[models.ServiceItem, *models.ServiceItem]
	logger   *slog.Logger
}

func NewServiceController(content *services.ContentService, logger *slog.Logger) *ServiceController {
	return &ServiceController{services: content.Services, logger: logger}
}

// GetServices lists every service, hidden ones included
func (sc *ServiceController) GetServices(c *gin.Context) {
	items, err := sc.services.ListAll(c.Request.Context(), "")
	if err != nil {
		respondServiceError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateService appends a new service to the end of the list
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.ServiceItem{
		Title:       input.Title,
		Description: input.Description,
		Features:    input.Features,
		Price:       input.Price,
		Duration:    input.Duration,
		Icon:        input.Icon,
	}
	if item.Features == nil {
		item.Features = []string{}
	}

	if err := sc.services.Create(c.Request.Context(), &item); err != nil {
		respondServiceError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateService merges the provided fields into an existing service
func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := sc.services.Update(c.Request.Context(), id, func(service *models.ServiceItem) {
		if input.Title != nil {
			service.Title = *input.Title
		}
		if input.Description != nil {
			service.Description = *input.Description
		}
		if input.Features != nil {
			service.Features = *input.Features
		}
		if input.Price != nil {
			service.Price = *input.Price
		}
		if input.Duration != nil {
			service.Duration = *input.Duration
		}
		if input.Icon != nil {
			service.Icon = *input.Icon
		}
		if input.IsActive != nil {
			service.IsActive = *input.IsActive
		}
	})
	if err != nil {
		respondServiceError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// SetServiceActive shows or hides a service on the public site
func (sc *ServiceController) SetServiceActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input SetActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := sc.services.SetActive(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondServiceError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ReorderServices stores a new display order and returns the stored order
func (sc *ServiceController) ReorderServices(c *gin.Context) {
	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	items, err := sc.services.Reorder(c.Request.Context(), input.IDs, "")
	if err != nil {
		respondServiceError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteService removes a service permanently
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := sc.services.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, sc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
