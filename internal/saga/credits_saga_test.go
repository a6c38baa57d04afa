package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/platform"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type fakeLedger struct {
	balance  float64
	addErrOn int
	calls    int
	keys     []string
	getErr   error
}

func (f *fakeLedger) GetUser(context.Context, string) (models.User, error) {
	if f.getErr != nil {
		return models.User{}, f.getErr
	}
	return models.User{ID: "parent-1", Credits: f.balance}, nil
}

func (f *fakeLedger) AddCredits(_ context.Context, _ string, delta float64, key string) (models.User, error) {
	f.calls++
	f.keys = append(f.keys, key)
	if f.addErrOn == f.calls {
		return models.User{}, errors.New("ledger write refused")
	}
	f.balance += delta
	return models.User{ID: "parent-1", Credits: f.balance}, nil
}

type fakeCreator struct {
	err   error
	calls int
}

func (f *fakeCreator) CreatePackage(context.Context, platform.CreatePackagePayload) (models.Package, error) {
	f.calls++
	if f.err != nil {
		return models.Package{}, f.err
	}
	return models.Package{ID: "pkg-1"}, nil
}

type recordingJournal struct {
	begun    []models.SagaRecord
	states   []string
	compKeys []string
}

func (j *recordingJournal) Begin(_ context.Context, rec models.SagaRecord) error {
	j.begun = append(j.begun, rec)
	return nil
}

func (j *recordingJournal) Transition(_ context.Context, _, state, _ string) error {
	j.states = append(j.states, state)
	return nil
}

func (j *recordingJournal) RecordCompensation(_ context.Context, _, key string) error {
	j.compKeys = append(j.compKeys, key)
	return nil
}

func input(credits float64) Input {
	return Input{
		ParentID: "parent-1",
		Credits:  credits,
		Payload:  platform.CreatePackagePayload{StudentID: "student-1", Credits: int(credits)},
	}
}

func TestCommit(t *testing.T) {
	ledger := &fakeLedger{balance: 10}
	creator := &fakeCreator{}
	journal := &recordingJournal{}
	var outcomes []string
	s := NewCreditsSaga(ledger, creator, journal, func(state string) { outcomes = append(outcomes, state) }, nil)

	created, err := s.Run(context.Background(), input(5))
	require.NoError(t, err)
	assert.Equal(t, "pkg-1", created.ID)
	assert.Equal(t, float64(15), ledger.balance)
	assert.Equal(t, []string{models.SagaStateCreditsAdded, models.SagaStateCommitted}, journal.states)
	assert.Equal(t, []string{models.SagaStateCommitted}, outcomes)
}

func TestCreditsStepFailureAborts(t *testing.T) {
	ledger := &fakeLedger{balance: 10, addErrOn: 1}
	creator := &fakeCreator{}
	journal := &recordingJournal{}
	s := NewCreditsSaga(ledger, creator, journal, nil, nil)

	_, err := s.Run(context.Background(), input(5))
	require.Error(t, err)
	assert.EqualError(t, err, "ledger write refused")
	assert.Zero(t, creator.calls, "package creation must not be attempted")
	assert.Equal(t, float64(10), ledger.balance)
	assert.Equal(t, []string{models.SagaStateFailed}, journal.states)
}

func TestRollbackRestoresBalance(t *testing.T) {
	ledger := &fakeLedger{balance: 10}
	creator := &fakeCreator{err: errors.New("duplicate package")}
	journal := &recordingJournal{}
	s := NewCreditsSaga(ledger, creator, journal, nil, nil)

	_, err := s.Run(context.Background(), input(5))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCreditsRolledBack))
	assert.Equal(t, float64(10), ledger.balance, "compensation must leave the balance unchanged")
	assert.Equal(t, 2, ledger.calls)
	assert.Equal(t, []string{models.SagaStateCreditsAdded, models.SagaStateRolledBack}, journal.states)
}

func TestRollbackUsesFreshIdempotencyKey(t *testing.T) {
	ledger := &fakeLedger{balance: 0}
	creator := &fakeCreator{err: errors.New("boom")}
	s := NewCreditsSaga(ledger, creator, nil, nil, nil)

	_, err := s.Run(context.Background(), input(5))
	require.Error(t, err)
	require.Len(t, ledger.keys, 2)
	assert.NotEmpty(t, ledger.keys[0])
	assert.NotEmpty(t, ledger.keys[1])
	assert.NotEqual(t, ledger.keys[0], ledger.keys[1], "compensation must carry its own key")
}

func TestRollbackJournalsCompensationKey(t *testing.T) {
	ledger := &fakeLedger{balance: 10}
	creator := &fakeCreator{err: errors.New("boom")}
	journal := &recordingJournal{}
	s := NewCreditsSaga(ledger, creator, journal, nil, nil)

	_, err := s.Run(context.Background(), input(5))
	require.Error(t, err)
	require.Len(t, ledger.keys, 2)
	require.Len(t, journal.compKeys, 1)
	assert.Equal(t, ledger.keys[1], journal.compKeys[0], "the journal must hold the key the ledger saw")
	require.Len(t, journal.begun, 1)
	assert.Equal(t, ledger.keys[0], journal.begun[0].StepKey)
}

func TestInconsistentOutcomeJournalsCompensationKey(t *testing.T) {
	ledger := &fakeLedger{balance: 10, addErrOn: 2}
	creator := &fakeCreator{err: errors.New("boom")}
	journal := &recordingJournal{}
	s := NewCreditsSaga(ledger, creator, journal, nil, nil)

	_, err := s.Run(context.Background(), input(5))
	require.Error(t, err)
	// The reversal was attempted and refused; its key is still on record
	// for manual reconciliation.
	require.Len(t, journal.compKeys, 1)
	assert.Equal(t, ledger.keys[1], journal.compKeys[0])
	assert.Equal(t, []string{models.SagaStateCreditsAdded, models.SagaStateInconsistent}, journal.states)
}

func TestCompensationFailureIsInconsistent(t *testing.T) {
	ledger := &fakeLedger{balance: 10, addErrOn: 2}
	creator := &fakeCreator{err: errors.New("boom")}
	journal := &recordingJournal{}
	var outcomes []string
	s := NewCreditsSaga(ledger, creator, journal, func(state string) { outcomes = append(outcomes, state) }, nil)

	_, err := s.Run(context.Background(), input(5))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrLedgerInconsistent))
	assert.False(t, appErrors.Is(err, appErrors.ErrCreditsRolledBack))
	assert.Equal(t, float64(15), ledger.balance, "the stray credits remain for manual reconciliation")
	assert.Equal(t, []string{models.SagaStateCreditsAdded, models.SagaStateInconsistent}, journal.states)
	assert.Equal(t, []string{models.SagaStateInconsistent}, outcomes)
}

func TestZeroCreditsSkipsLedger(t *testing.T) {
	ledger := &fakeLedger{balance: 10}
	creator := &fakeCreator{}
	journal := &recordingJournal{}
	s := NewCreditsSaga(ledger, creator, journal, nil, nil)

	_, err := s.Run(context.Background(), input(0))
	require.NoError(t, err)
	assert.Zero(t, ledger.calls)
	assert.Equal(t, []string{models.SagaStateCommitted}, journal.states)
}

func TestNoParentSkipsLedger(t *testing.T) {
	ledger := &fakeLedger{balance: 10}
	creator := &fakeCreator{err: errors.New("boom")}
	s := NewCreditsSaga(ledger, creator, nil, nil, nil)

	in := input(5)
	in.ParentID = ""
	_, err := s.Run(context.Background(), in)
	require.Error(t, err)
	// Plain failure, no compensation semantics involved.
	assert.False(t, appErrors.Is(err, appErrors.ErrCreditsRolledBack))
	assert.False(t, appErrors.Is(err, appErrors.ErrLedgerInconsistent))
	assert.Zero(t, ledger.calls)
}

func TestBalanceFetchFailureAborts(t *testing.T) {
	ledger := &fakeLedger{balance: 10, getErr: errors.New("parent not found")}
	creator := &fakeCreator{}
	s := NewCreditsSaga(ledger, creator, nil, nil, nil)

	_, err := s.Run(context.Background(), input(5))
	require.Error(t, err)
	assert.Zero(t, ledger.calls)
	assert.Zero(t, creator.calls)
}
