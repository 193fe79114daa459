package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-event-registration/pkg/response"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// Health GET /health
func Health(c *gin.Context) {
	response.JSON(c, http.StatusOK, HealthResponse{Status: "ok"})
}
