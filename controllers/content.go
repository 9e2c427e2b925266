// controllers/content.go
package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"glamstudio-backend/services"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
)

const maxSectionBytes = 1 << 20

type ContentController struct {
	content *services.ContentService
	logger  *slog.Logger
}

func NewContentController(content *services.ContentService, logger *slog.Logger) *ContentController {
	return &ContentController{content: content, logger: logger}
}

// GetSection returns the stored document or its default
func (cc *ContentController) GetSection(c *gin.Context) {
	section := c.Param("section")
	c.JSON(http.StatusOK, gin.H{
		"section": section,
		"content": cc.content.GetSection(c.Request.Context(), section),
	})
}

// UpdateSection replaces the whole document of a section
func (cc *ContentController) UpdateSection(c *gin.Context) {
	section := c.Param("section")

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSectionBytes+1))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if len(raw) > maxSectionBytes {
		utils.RespondWithError(c, http.StatusRequestEntityTooLarge, "Section document is too large")
		return
	}

	row, err := cc.content.PutSection(c.Request.Context(), section, raw)
	if err != nil {
		respondServiceError(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
