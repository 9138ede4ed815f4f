package controllers

import (
	"github.com/gin-gonic/gin"

	"agentsville/internal/models/response_models"
	"agentsville/internal/repositories"
	"agentsville/pkg/utils"
)

type HealthController struct {
	storage string
}

func NewHealthController(runRepo repositories.IItineraryRunRepository) *HealthController {
	return &HealthController{storage: repositories.StorageName(runRepo)}
}

func (h *HealthController) HealthzHandler(c *gin.Context) {
	utils.RespondSuccess(c, response_models.HealthResponse{Status: "ok", Storage: h.storage}, "")
}
