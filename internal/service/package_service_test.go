package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/saga"
	"github.com/mathcode/tutor-admin-api/internal/store"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type mockPackageClient struct {
	packages  []models.Package
	listErr   error
	updated   models.Package
	updateErr error
	assigned  models.Package
	calls     int
}

func (m *mockPackageClient) ListPackages(context.Context) ([]models.Package, error) {
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.packages, nil
}

func (m *mockPackageClient) GetPackage(context.Context, string) (models.Package, error) {
	m.calls++
	return m.updated, nil
}

func (m *mockPackageClient) UpdatePackage(context.Context, string, models.UpdatePackageData) (models.Package, error) {
	m.calls++
	return m.updated, m.updateErr
}

func (m *mockPackageClient) AssignTutor(context.Context, string, string) (models.Package, error) {
	m.calls++
	return m.assigned, nil
}

type mockPurchase struct {
	in      saga.Input
	created models.Package
	err     error
	calls   int
}

func (m *mockPurchase) Run(_ context.Context, in saga.Input) (models.Package, error) {
	m.calls++
	m.in = in
	if m.err != nil {
		return models.Package{}, m.err
	}
	return m.created, nil
}

func newPackageService(client *mockPackageClient, purchase *mockPurchase) (*PackageService, *store.PackageStore) {
	packageStore := store.NewPackageStore()
	return NewPackageService(client, purchase, packageStore, nil, nil), packageStore
}

func TestPackageCreateDerivesFromPricingTable(t *testing.T) {
	purchase := &mockPurchase{created: models.Package{ID: "pkg-1"}}
	svc, packageStore := newPackageService(&mockPackageClient{}, purchase)

	created, err := svc.Create(context.Background(), models.CreatePackageData{
		StudentID:       "s1",
		ParentID:        "p1",
		PackageType:     "1-2",
		SessionsPerWeek: "2",
		PlanDuration:    "QUARTERLY",
	})
	require.NoError(t, err)
	assert.Equal(t, "pkg-1", created.ID)

	require.Equal(t, 1, purchase.calls)
	assert.Equal(t, "p1", purchase.in.ParentID)
	assert.Equal(t, float64(26), purchase.in.Credits)
	assert.Equal(t, 14400, purchase.in.Payload.Price)
	assert.Equal(t, 26, purchase.in.Payload.SessionsCount)
	assert.Equal(t, 26, purchase.in.Payload.Credits)
	assert.Equal(t, models.PackageStatusRequestedAssessment, purchase.in.Payload.Status)

	all := packageStore.All()
	require.Len(t, all, 1)
	assert.Equal(t, "pkg-1", all[0].ID)
}

func TestPackageCreateUnknownPlanRejected(t *testing.T) {
	purchase := &mockPurchase{}
	svc, _ := newPackageService(&mockPackageClient{}, purchase)

	_, err := svc.Create(context.Background(), models.CreatePackageData{
		StudentID:       "s1",
		PackageType:     "1-2",
		SessionsPerWeek: "4",
		PlanDuration:    "QUARTERLY",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, purchase.calls)
}

func TestPackageCreateSagaErrorSurfaces(t *testing.T) {
	purchase := &mockPurchase{err: appErrors.ErrCreditsRolledBack}
	svc, packageStore := newPackageService(&mockPackageClient{}, purchase)

	_, err := svc.Create(context.Background(), models.CreatePackageData{
		StudentID:       "s1",
		ParentID:        "p1",
		PackageType:     "1-1",
		SessionsPerWeek: "3",
		PlanDuration:    "ANNUAL",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCreditsRolledBack))
	assert.Zero(t, len(packageStore.All()))
}

func TestPackageUpdateScheduledRequiresMeetingLink(t *testing.T) {
	client := &mockPackageClient{}
	svc, packageStore := newPackageService(client, &mockPurchase{})
	packageStore.Replace([]models.Package{{ID: "pkg-1", Status: models.PackageStatusApproved}})

	status := models.PackageStatusScheduled
	_, err := svc.Update(context.Background(), "pkg-1", models.UpdatePackageData{Status: &status})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, client.calls)

	link := "https://meet.example.com/room"
	client.updated = models.Package{ID: "pkg-1", Status: status, MeetingLink: link}
	_, err = svc.Update(context.Background(), "pkg-1", models.UpdatePackageData{Status: &status, MeetingLink: &link})
	require.NoError(t, err)

	stored, _ := packageStore.Get("pkg-1")
	assert.Equal(t, models.PackageStatusScheduled, stored.Status)
	assert.Equal(t, link, stored.MeetingLink)
}

func TestPackageUpdateRejectsBadMeetingLink(t *testing.T) {
	client := &mockPackageClient{}
	svc, packageStore := newPackageService(client, &mockPurchase{})
	packageStore.Replace([]models.Package{{ID: "pkg-1", Status: models.PackageStatusScheduled}})

	link := "ftp://meet.example.com"
	_, err := svc.Update(context.Background(), "pkg-1", models.UpdatePackageData{MeetingLink: &link})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, client.calls)
}

func TestPackageUpdateInvalidID(t *testing.T) {
	client := &mockPackageClient{}
	svc, _ := newPackageService(client, &mockPurchase{})

	_, err := svc.Update(context.Background(), "undefined", models.UpdatePackageData{})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidID))
	assert.Zero(t, client.calls)
}

func TestPackageAssignTutorAppliesLocally(t *testing.T) {
	client := &mockPackageClient{assigned: models.Package{ID: "pkg-1", TutorID: "t1", TutorName: "Mr. Cruz"}}
	svc, packageStore := newPackageService(client, &mockPurchase{})
	packageStore.Replace([]models.Package{{ID: "pkg-1"}})

	updated, err := svc.AssignTutor(context.Background(), "pkg-1", models.AssignTutorData{TutorID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "t1", updated.TutorID)

	stored, _ := packageStore.Get("pkg-1")
	assert.Equal(t, "Mr. Cruz", stored.TutorName)
}

func TestPackageRefreshFailureKeepsStale(t *testing.T) {
	client := &mockPackageClient{packages: []models.Package{{ID: "pkg-1"}}}
	svc, _ := newPackageService(client, &mockPurchase{})

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	client.listErr = errors.New("backend down")
	stale, err := svc.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, stale, 1)
	assert.Equal(t, "backend down", svc.LastError())
}

func TestPackagePricingView(t *testing.T) {
	svc, _ := newPackageService(&mockPackageClient{}, &mockPurchase{})

	view := svc.Pricing()
	assert.Contains(t, view.Types, "1-1")
	assert.Contains(t, view.Types, "1-2")
	assert.Len(t, view.Plans["1-2"]["2"], 4)
}
