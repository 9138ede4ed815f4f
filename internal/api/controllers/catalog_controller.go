package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agentsville/internal/models/plan_models"
	"agentsville/internal/services"
	"agentsville/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// GET /api/catalog/activities?date=2025-06-10&city=AgentsVille
func (cc *CatalogController) ListActivitiesHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, http.StatusBadRequest, "date is required")
		return
	}
	city := c.DefaultQuery("city", plan_models.DefaultCity)

	acts, err := cc.catalogService.ActivitiesByDate(c.Request.Context(), date, city)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}

	utils.RespondSuccess(c, acts, "Activities fetched successfully")
}

// GET /api/catalog/activities/:id
func (cc *CatalogController) GetActivityHandler(c *gin.Context) {
	activityID := c.Param("id")
	if activityID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Activity ID is required")
		return
	}

	act, err := cc.catalogService.ActivityByID(c.Request.Context(), activityID)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}

	utils.RespondSuccess(c, act, "Activity fetched successfully")
}

// GET /api/catalog/weather?date=2025-06-10&city=AgentsVille
func (cc *CatalogController) GetWeatherHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, http.StatusBadRequest, "date is required")
		return
	}
	city := c.DefaultQuery("city", plan_models.DefaultCity)

	w, err := cc.catalogService.WeatherByDate(c.Request.Context(), date, city)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}

	utils.RespondSuccess(c, w, "Weather fetched successfully")
}
