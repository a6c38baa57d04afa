package models

import "time"

// Saga outcomes recorded in the journal.
const (
	SagaStateStarted      = "started"
	SagaStateCreditsAdded = "credits_added"
	SagaStateCommitted    = "committed"
	SagaStateFailed       = "failed"
	SagaStateRolledBack   = "rolled_back"
	SagaStateInconsistent = "inconsistent"
)

// SagaRecord is one journalled run of the package-purchase saga.
type SagaRecord struct {
	ID              string    `db:"id" json:"id"`
	ParentID        string    `db:"parent_id" json:"parent_id"`
	Credits         float64   `db:"credits" json:"credits"`
	Payload         string    `db:"payload" json:"payload"`
	State           string    `db:"state" json:"state"`
	StepKey         string    `db:"step_key" json:"step_key"`
	CompensationKey string    `db:"compensation_key" json:"compensation_key"`
	LastError       string    `db:"last_error" json:"last_error,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
