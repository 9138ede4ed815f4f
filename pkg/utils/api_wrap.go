package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

// HandleServiceError maps service sentinels to HTTP status codes. The error
// text is returned to the caller for client errors only.
func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrActivityNotFound),
		errors.Is(err, ErrWeatherNotFound),
		errors.Is(err, ErrRunNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSchemaViolation),
		errors.Is(err, ErrUnexpectedBehaviorOfAI):
		logger.Warn("reasoning output rejected", zap.String("trace_id", traceIDOf(c)), zap.Error(err))
		RespondError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrDatabaseError):
		logger.Error("database error", zap.String("trace_id", traceIDOf(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logger.Error("unknown error", zap.String("trace_id", traceIDOf(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
