// Package saga implements the two-step package purchase with manual
// compensation. The platform backend offers no transaction spanning a
// credit grant and a package creation, so the console sequences them and
// reverses the exact credit delta when the second step fails.
package saga

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/platform"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

// creditLedger is the slice of the platform client the saga mutates
// balances through.
type creditLedger interface {
	GetUser(ctx context.Context, id string) (models.User, error)
	AddCredits(ctx context.Context, id string, delta float64, idempotencyKey string) (models.User, error)
}

// packageCreator creates the package once credits have landed.
type packageCreator interface {
	CreatePackage(ctx context.Context, payload platform.CreatePackagePayload) (models.Package, error)
}

// Journal persists each run's state transitions for later reconciliation.
// A nil journal disables persistence without changing saga behaviour.
type Journal interface {
	Begin(ctx context.Context, rec models.SagaRecord) error
	Transition(ctx context.Context, id, state, lastError string) error
	RecordCompensation(ctx context.Context, id, key string) error
}

// OutcomeRecorder observes terminal saga states, e.g. for metrics.
type OutcomeRecorder func(state string)

// Input describes one purchase attempt.
type Input struct {
	ParentID string
	Credits  float64
	Payload  platform.CreatePackagePayload
}

// CreditsSaga runs the credit-then-create sequence.
type CreditsSaga struct {
	ledger   creditLedger
	packages packageCreator
	journal  Journal
	outcome  OutcomeRecorder
	logger   *zap.Logger
}

// NewCreditsSaga wires the saga. journal and outcome may be nil.
func NewCreditsSaga(ledger creditLedger, packages packageCreator, journal Journal, outcome OutcomeRecorder, logger *zap.Logger) *CreditsSaga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreditsSaga{
		ledger:   ledger,
		packages: packages,
		journal:  journal,
		outcome:  outcome,
		logger:   logger,
	}
}

// Run executes one purchase. Credits land before the package is created so
// the creation endpoint observes the updated balance. Compensation
// reverses exactly the delta that was applied, never a recomputed
// balance difference.
func (s *CreditsSaga) Run(ctx context.Context, in Input) (models.Package, error) {
	rec := models.SagaRecord{
		ID:       uuid.NewString(),
		ParentID: in.ParentID,
		Credits:  in.Credits,
		State:    models.SagaStateStarted,
	}
	if encoded, err := json.Marshal(in.Payload); err == nil {
		rec.Payload = string(encoded)
	}

	creditsNeeded := in.Credits > 0 && in.ParentID != ""
	if creditsNeeded {
		rec.StepKey = uuid.NewString()
	}
	s.journalBegin(ctx, rec)

	if creditsNeeded {
		before, err := s.ledger.GetUser(ctx, in.ParentID)
		if err != nil {
			s.finish(ctx, rec.ID, models.SagaStateFailed, err)
			return models.Package{}, err
		}

		if _, err := s.ledger.AddCredits(ctx, in.ParentID, in.Credits, rec.StepKey); err != nil {
			s.finish(ctx, rec.ID, models.SagaStateFailed, err)
			return models.Package{}, err
		}

		s.logger.Info("credits added",
			zap.String("saga_id", rec.ID),
			zap.String("parent_id", in.ParentID),
			zap.Float64("delta", in.Credits),
			zap.Float64("balance_before", before.Credits),
		)
		s.transition(ctx, rec.ID, models.SagaStateCreditsAdded, "")
	}

	created, createErr := s.packages.CreatePackage(ctx, in.Payload)
	if createErr == nil {
		s.finish(ctx, rec.ID, models.SagaStateCommitted, nil)
		return created, nil
	}

	if !creditsNeeded {
		s.finish(ctx, rec.ID, models.SagaStateFailed, createErr)
		return models.Package{}, createErr
	}

	// The key lands in the journal before the compensation call so a
	// crash mid-reversal still leaves support the exact key that may
	// have reached the ledger.
	compensationKey := uuid.NewString()
	s.journalCompensation(ctx, rec.ID, compensationKey)
	if _, compErr := s.ledger.AddCredits(ctx, in.ParentID, -in.Credits, compensationKey); compErr != nil {
		s.logger.Error("credit compensation failed, ledger inconsistent",
			zap.String("saga_id", rec.ID),
			zap.String("parent_id", in.ParentID),
			zap.Float64("delta", in.Credits),
			zap.NamedError("create_error", createErr),
			zap.NamedError("compensation_error", compErr),
		)
		s.finish(ctx, rec.ID, models.SagaStateInconsistent, compErr)
		return models.Package{}, appErrors.Wrap(createErr, appErrors.ErrLedgerInconsistent.Code, appErrors.ErrLedgerInconsistent.Status, appErrors.ErrLedgerInconsistent.Message)
	}

	s.logger.Warn("package creation failed, credits rolled back",
		zap.String("saga_id", rec.ID),
		zap.String("parent_id", in.ParentID),
		zap.Float64("delta", in.Credits),
		zap.NamedError("create_error", createErr),
	)
	s.finish(ctx, rec.ID, models.SagaStateRolledBack, createErr)
	return models.Package{}, appErrors.Wrap(createErr, appErrors.ErrCreditsRolledBack.Code, appErrors.ErrCreditsRolledBack.Status, appErrors.ErrCreditsRolledBack.Message)
}

func (s *CreditsSaga) journalBegin(ctx context.Context, rec models.SagaRecord) {
	if s.journal == nil {
		return
	}
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
	if err := s.journal.Begin(ctx, rec); err != nil {
		s.logger.Warn("saga journal begin failed", zap.String("saga_id", rec.ID), zap.Error(err))
	}
}

func (s *CreditsSaga) journalCompensation(ctx context.Context, id, key string) {
	if s.journal == nil {
		return
	}
	if err := s.journal.RecordCompensation(ctx, id, key); err != nil {
		s.logger.Warn("saga journal compensation key failed", zap.String("saga_id", id), zap.Error(err))
	}
}

func (s *CreditsSaga) transition(ctx context.Context, id, state, lastError string) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Transition(ctx, id, state, lastError); err != nil {
		s.logger.Warn("saga journal transition failed", zap.String("saga_id", id), zap.String("state", state), zap.Error(err))
	}
}

func (s *CreditsSaga) finish(ctx context.Context, id, state string, cause error) {
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}
	s.transition(ctx, id, state, lastError)
	if s.outcome != nil {
		s.outcome(state)
	}
}
