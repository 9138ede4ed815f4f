package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrSchemaViolation        = errors.New("schema violation")
	ErrRuleViolation          = errors.New("rule violation")
	ErrToolExecution          = errors.New("tool execution error")
	ErrIterationExhausted     = errors.New("iteration cap reached without finalize")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI")
	ErrActivityNotFound       = errors.New("activity not found")
	ErrWeatherNotFound        = errors.New("weather not found")
	ErrRunNotFound            = errors.New("itinerary run not found")
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrDatabaseError          = errors.New("database error")
)
