// controllers/booking.go
package controllers

import (
	"log/slog"
	"net/http"

	"glamstudio-backend/services"
	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	booking *services.BookingService
	logger  *slog.Logger
}

func NewBookingController(booking *services.BookingService, logger *slog.Logger) *BookingController {
	return &BookingController{booking: booking, logger: logger}
}

// GetLink returns deep links for ?service=, or a general enquiry without it
func (bc *BookingController) GetLink(c *gin.Context) {
	links := bc.booking.Link(c.Request.Context(), c.Query("service"), envelope(c, ""))
	c.JSON(http.StatusOK, links)
}

// CreateRequest validates the appointment form and forwards it to the studio
func (bc *BookingController) CreateRequest(c *gin.Context) {
	var input services.BookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	links, err := bc.booking.Request(c.Request.Context(), input, envelope(c, ""))
	if err != nil {
		respondServiceError(c, bc.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, links)
}
