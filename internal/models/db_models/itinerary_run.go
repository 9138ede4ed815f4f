package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type RunStatus string

const (
	RunStatusValidated        RunStatus = "validated"
	RunStatusFailedValidation RunStatus = "failed_validation"
	RunStatusIncomplete       RunStatus = "incomplete"
)

// ItineraryRun is one pass of the planner pipeline, kept for later lookup.
type ItineraryRun struct {
	BaseModel
	City         string         `gorm:"index" json:"city"`
	StartDate    string         `gorm:"size:10" json:"start_date"`
	EndDate      string         `gorm:"size:10" json:"end_date"`
	Travelers    pq.StringArray `gorm:"type:text[]" json:"travelers"`
	Interests    pq.StringArray `gorm:"type:text[]" json:"interests"`
	BudgetAmount float64        `json:"budget_amount"`
	Currency     string         `gorm:"size:3" json:"currency"`
	Feedback     string         `gorm:"type:text" json:"feedback,omitempty"`
	Status       RunStatus      `gorm:"index" json:"status"`
	Iterations   int            `json:"iterations"`
	InitialPlan  datatypes.JSON `gorm:"type:jsonb" json:"initial_plan"`
	FinalPlan    datatypes.JSON `gorm:"type:jsonb" json:"final_plan"`
	Evaluation   datatypes.JSON `gorm:"type:jsonb" json:"evaluation"`
	// Embedding of the trip request, used to find similar runs.
	Embedding *pgvector.Vector `gorm:"type:vector(1536)" json:"-"`
}

// RunWithSimilarity is a run returned by a similarity search.
type RunWithSimilarity struct {
	ItineraryRun
	Similarity float64 `json:"similarity"`
}
