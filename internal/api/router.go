package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agentsville/internal/api/controllers"
	"agentsville/pkg/middleware"
)

type RouterParams struct {
	Logger              *zap.Logger
	JWTSecret           []byte
	ItineraryController *controllers.ItineraryController
	CatalogController   *controllers.CatalogController
	HealthController    *controllers.HealthController
}

func NewRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/healthz", p.HealthController.HealthzHandler)

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.JWTAuthMiddleware(p.JWTSecret))

	itineraries := apiGroup.Group("/itineraries")
	itineraries.POST("/plan", p.ItineraryController.PlanHandler)
	itineraries.POST("/evaluate", p.ItineraryController.EvaluateHandler)
	itineraries.POST("/revise", p.ItineraryController.ReviseHandler)
	itineraries.POST("/similar", p.ItineraryController.SimilarRunsHandler)
	itineraries.GET("/runs", p.ItineraryController.ListRunsHandler)
	itineraries.GET("/runs/:id", p.ItineraryController.GetRunHandler)

	catalog := apiGroup.Group("/catalog")
	catalog.GET("/activities", p.CatalogController.ListActivitiesHandler)
	catalog.GET("/activities/:id", p.CatalogController.GetActivityHandler)
	catalog.GET("/weather", p.CatalogController.GetWeatherHandler)
}
