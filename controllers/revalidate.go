// controllers/revalidate.go
package controllers

import (
	"net/http"

	"glamstudio-backend/services"

	"github.com/gin-gonic/gin"
)

type RevalidateController struct {
	publisher services.Publisher
}

func NewRevalidateController(publisher services.Publisher) *RevalidateController {
	return &RevalidateController{publisher: publisher}
}

// Revalidate invalidates ?path= (default "/") and reports the outcome.
func (rc *RevalidateController) Revalidate(c *gin.Context) {
	result := rc.publisher.Invalidate(c.Request.Context(), c.Query("path"))
	c.JSON(http.StatusOK, result)
}
