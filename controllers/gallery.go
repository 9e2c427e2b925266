// controllers/gallery.go
package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"glamstudio-backend/models"
	"glamstudio-backend/services"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateImageInput struct {
	URL      string `json:"url" binding:"required"`
	Alt      string `json:"alt"`
	Category string `json:"category" binding:"required"`
	Title    string `json:"title"`
}

type UpdateImageInput struct {
	URL      *string `json:"url"`
	Alt      *string `json:"alt"`
	Category *string `json:"category"`
	Title    *string `json:"title"`
	IsActive *bool   `json:"is_active"`
}

type GalleryController struct {
	gallery *services.CollectionService[models.GalleryImage, *models.GalleryImage]
	logger  *slog.Logger
}

func NewGalleryController(content *services.ContentService, logger *slog.Logger) *GalleryController {
	return &GalleryController{gallery: content.Gallery, logger: logger}
}

// GetImages lists the gallery, optionally one category
func (gc *GalleryController) GetImages(c *gin.Context) {
	images, err := gc.gallery.ListAll(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		respondServiceError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (gc *GalleryController) CreateImage(c *gin.Context) {
	var input CreateImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	image := models.GalleryImage{
		URL:      strings.TrimSpace(input.URL),
		Alt:      input.Alt,
		Category: input.Category,
		Title:    input.Title,
	}
	if err := gc.gallery.Create(c.Request.Context(), &image); err != nil {
		respondServiceError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

func (gc *GalleryController) UpdateImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	image, err := gc.gallery.Update(c.Request.Context(), id, func(img *models.GalleryImage) {
		if input.URL != nil {
			img.URL = strings.TrimSpace(*input.URL)
		}
		if input.Alt != nil {
			img.Alt = *input.Alt
		}
		if input.Category != nil {
			img.Category = *input.Category
		}
		if input.Title != nil {
			img.Title = *input.Title
		}
		if input.IsActive != nil {
			img.IsActive = *input.IsActive
		}
	})
	if err != nil {
		respondServiceError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

func (gc *GalleryController) SetImageActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input SetActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	image, err := gc.gallery.SetActive(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondServiceError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// ReorderImages reorders the whole gallery, or one category when
// ?category= is given.
func (gc *GalleryController) ReorderImages(c *gin.Context) {
	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	images, err := gc.gallery.Reorder(c.Request.Context(), input.IDs, strings.TrimSpace(c.Query("category")))
	if err != nil {
		respondServiceError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (gc *GalleryController) DeleteImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := gc.gallery.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
