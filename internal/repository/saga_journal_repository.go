package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mathcode/tutor-admin-api/internal/models"
)

// SagaJournalRepository persists purchase saga runs. Rows ending in the
// inconsistent state feed manual reconciliation.
type SagaJournalRepository struct {
	db *sqlx.DB
}

// NewSagaJournalRepository constructs the repository.
func NewSagaJournalRepository(db *sqlx.DB) *SagaJournalRepository {
	return &SagaJournalRepository{db: db}
}

// Begin inserts the initial record of a run.
func (r *SagaJournalRepository) Begin(ctx context.Context, rec models.SagaRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.UpdatedAt = rec.CreatedAt

	const query = `INSERT INTO saga_journal
	(id, parent_id, credits, payload, state, step_key, compensation_key, last_error, created_at, updated_at)
	VALUES (:id, :parent_id, :credits, :payload, :state, :step_key, :compensation_key, :last_error, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("begin saga record: %w", err)
	}
	return nil
}

// Transition moves a run to a new state.
func (r *SagaJournalRepository) Transition(ctx context.Context, id, state, lastError string) error {
	const query = `UPDATE saga_journal SET state = $2, last_error = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, state, lastError, time.Now().UTC()); err != nil {
		return fmt.Errorf("transition saga record %s: %w", id, err)
	}
	return nil
}

// RecordCompensation stores the idempotency key of a reversal attempt.
func (r *SagaJournalRepository) RecordCompensation(ctx context.Context, id, key string) error {
	const query = `UPDATE saga_journal SET compensation_key = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, key, time.Now().UTC()); err != nil {
		return fmt.Errorf("record compensation key for saga %s: %w", id, err)
	}
	return nil
}

// GetByID fetches one run.
func (r *SagaJournalRepository) GetByID(ctx context.Context, id string) (*models.SagaRecord, error) {
	const query = `SELECT id, parent_id, credits, payload, state, step_key, compensation_key, last_error, created_at, updated_at
	FROM saga_journal WHERE id = $1`
	var rec models.SagaRecord
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByState returns runs in a given state, latest first. Used to surface
// inconsistent ledgers.
func (r *SagaJournalRepository) ListByState(ctx context.Context, state string, limit int) ([]models.SagaRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, parent_id, credits, payload, state, step_key, compensation_key, last_error, created_at, updated_at
	FROM saga_journal WHERE state = $1 ORDER BY created_at DESC LIMIT $2`
	records := []models.SagaRecord{}
	if err := r.db.SelectContext(ctx, &records, query, state, limit); err != nil {
		return nil, fmt.Errorf("list saga records: %w", err)
	}
	return records, nil
}
