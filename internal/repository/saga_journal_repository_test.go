package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/mathcode/tutor-admin-api/internal/models"
)

func newJournalRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSagaJournalBeginAndTransition(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()

	repo := NewSagaJournalRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO saga_journal")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Begin(context.Background(), models.SagaRecord{
		ID:       "saga-1",
		ParentID: "parent-1",
		Credits:  26,
		Payload:  `{"studentId":"student-1"}`,
		State:    models.SagaStateStarted,
		StepKey:  "key-1",
	}))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE saga_journal SET state")).
		WithArgs("saga-1", models.SagaStateCommitted, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Transition(context.Background(), "saga-1", models.SagaStateCommitted, ""))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSagaJournalRecordCompensation(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()

	repo := NewSagaJournalRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE saga_journal SET compensation_key")).
		WithArgs("saga-1", "key-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.RecordCompensation(context.Background(), "saga-1", "key-2"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSagaJournalGetByID(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()

	repo := NewSagaJournalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "parent_id", "credits", "payload", "state", "step_key", "compensation_key", "last_error", "created_at", "updated_at"}).
		AddRow("saga-1", "parent-1", 26.0, `{}`, models.SagaStateInconsistent, "key-1", "key-2", "ledger write refused", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, parent_id, credits, payload")).
		WithArgs("saga-1").
		WillReturnRows(rows)

	rec, err := repo.GetByID(context.Background(), "saga-1")
	require.NoError(t, err)
	require.Equal(t, models.SagaStateInconsistent, rec.State)
	require.Equal(t, "ledger write refused", rec.LastError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSagaJournalListByState(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()

	repo := NewSagaJournalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "parent_id", "credits", "payload", "state", "step_key", "compensation_key", "last_error", "created_at", "updated_at"}).
		AddRow("saga-2", "parent-2", 8.0, `{}`, models.SagaStateInconsistent, "k1", "k2", "boom", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM saga_journal WHERE state")).
		WithArgs(models.SagaStateInconsistent, 50).
		WillReturnRows(rows)

	records, err := repo.ListByState(context.Background(), models.SagaStateInconsistent, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryRecord(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Record(context.Background(), models.AuditLog{
		AdminEmail: "admin@example.com",
		Method:     "POST",
		Path:       "/api/packages",
		Status:     201,
		RequestID:  "req-1",
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}
