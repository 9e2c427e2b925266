// controllers/errors.go
package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"glamstudio-backend/services"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondServiceError writes the response for an error returned by the
// services package. Persistence details are logged, not returned.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	status := services.HTTPStatus(err)

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		utils.RespondWithFieldErrors(c, status, verr.Message, verr.Fields)
		return
	}

	var nerr *services.NotFoundError
	if errors.As(err, &nerr) {
		utils.RespondWithError(c, status, nerr.Error())
		return
	}

	logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save changes, please reload and try again")
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// SetActiveInput toggles public visibility of a collection item.
type SetActiveInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ReorderInput is the full new ordering of the displayed items.
type ReorderInput struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}
