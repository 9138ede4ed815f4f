package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agentsville/internal/models/request_models"
	"agentsville/internal/models/response_models"
	"agentsville/internal/services"
	"agentsville/pkg/utils"
)

const defaultSimilarLimit = 5

type ItineraryController struct {
	plannerService  services.PlannerServiceInterface
	revisionService services.RevisionServiceInterface
	logger          *zap.Logger
}

func NewItineraryController(
	plannerService services.PlannerServiceInterface,
	revisionService services.RevisionServiceInterface,
	logger *zap.Logger,
) *ItineraryController {
	return &ItineraryController{
		plannerService:  plannerService,
		revisionService: revisionService,
		logger:          logger,
	}
}

// POST /api/itineraries/plan
func (i *ItineraryController) PlanHandler(c *gin.Context) {
	var req request_models.PlanItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	outcome, err := i.plannerService.Plan(c.Request.Context(), services.PlanRequest{
		Vacation:      req.Vacation,
		Feedback:      req.Feedback,
		Revise:        req.ShouldRevise(),
		MaxIterations: req.MaxIterations,
	})
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, outcome, "Itinerary planned")
}

// POST /api/itineraries/evaluate
func (i *ItineraryController) EvaluateHandler(c *gin.Context) {
	var req request_models.EvaluateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "itinerary is required")
		return
	}

	res, err := i.plannerService.Evaluate(c.Request.Context(), services.EvaluateRequest{
		Plan:         req.Itinerary,
		Vacation:     req.Vacation,
		Feedback:     req.Feedback,
		PostRevision: req.PostRevision,
	})
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewEvaluationResponse(res), "Itinerary evaluated")
}

// POST /api/itineraries/revise
func (i *ItineraryController) ReviseHandler(c *gin.Context) {
	var req request_models.ReviseItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "itinerary is required")
		return
	}

	res, err := i.revisionService.Revise(c.Request.Context(), services.RevisionRequest{
		Vacation:      req.Vacation,
		Plan:          req.Itinerary,
		Feedback:      req.Feedback,
		MaxIterations: req.MaxIterations,
	})
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	message := "Revision completed"
	if res.Err() != nil {
		message = res.Err().Error()
	}
	utils.RespondSuccess(c, res, message)
}

// GET /api/itineraries/runs?page=1&page_size=10
func (i *ItineraryController) ListRunsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	runs, err := i.plannerService.ListRuns(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewRunSummaries(runs), "Runs fetched successfully")
}

// GET /api/itineraries/runs/:id
func (i *ItineraryController) GetRunHandler(c *gin.Context) {
	runID := c.Param("id")
	if runID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Run ID is required")
		return
	}

	run, err := i.plannerService.GetRun(c.Request.Context(), runID)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, run, "Run fetched successfully")
}

// POST /api/itineraries/similar
func (i *ItineraryController) SimilarRunsHandler(c *gin.Context) {
	var req request_models.SimilarRunsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultSimilarLimit
	}

	runs, err := i.plannerService.SimilarRuns(c.Request.Context(), req.Vacation, req.Limit)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewSimilarRunSummaries(runs), "Similar runs fetched successfully")
}
