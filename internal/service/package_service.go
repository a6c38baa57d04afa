package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/platform"
	"github.com/mathcode/tutor-admin-api/internal/pricing"
	"github.com/mathcode/tutor-admin-api/internal/saga"
	"github.com/mathcode/tutor-admin-api/internal/store"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type packageClient interface {
	ListPackages(ctx context.Context) ([]models.Package, error)
	GetPackage(ctx context.Context, id string) (models.Package, error)
	UpdatePackage(ctx context.Context, id string, data models.UpdatePackageData) (models.Package, error)
	AssignTutor(ctx context.Context, id, tutorID string) (models.Package, error)
}

type purchaseRunner interface {
	Run(ctx context.Context, in saga.Input) (models.Package, error)
}

// PackageService manages tutoring bundles. Creation derives every money
// field from the pricing table and runs through the credit saga.
type PackageService struct {
	client    packageClient
	purchase  purchaseRunner
	store     *store.PackageStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPackageService constructs the service.
func NewPackageService(client packageClient, purchase purchaseRunner, packageStore *store.PackageStore, validate *validator.Validate, logger *zap.Logger) *PackageService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PackageService{client: client, purchase: purchase, store: packageStore, validator: validate, logger: logger}
}

// Refresh reloads the list from the platform, keeping stale data on
// failure.
func (s *PackageService) Refresh(ctx context.Context) ([]models.Package, error) {
	s.store.SetLoading(true)
	packages, err := s.client.ListPackages(ctx)
	if err != nil {
		s.store.Fail(err)
		return s.store.All(), err
	}
	s.store.Replace(packages)
	return packages, nil
}

// List returns the cached list filtered by status and search text.
func (s *PackageService) List(q models.ListQuery) []models.Package {
	packages := s.store.All()
	if q.Status == "" && q.Search == "" {
		return packages
	}

	needle := strings.ToLower(q.Search)
	filtered := make([]models.Package, 0, len(packages))
	for _, p := range packages {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.StudentName), needle) &&
			!strings.Contains(strings.ToLower(p.TutorName), needle) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Get fetches one package from the platform.
func (s *PackageService) Get(ctx context.Context, id string) (models.Package, error) {
	if err := validID(id); err != nil {
		return models.Package{}, err
	}
	return s.client.GetPackage(ctx, id)
}

// Create derives price, session count and credits from the pricing table,
// then runs the purchase saga: credit the parent first, create the
// package second, compensate on partial failure.
func (s *PackageService) Create(ctx context.Context, data models.CreatePackageData) (models.Package, error) {
	if err := s.validator.Struct(data); err != nil {
		return models.Package{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	plan, ok := pricing.Lookup(data.PackageType, data.SessionsPerWeek, data.PlanDuration)
	if !ok {
		return models.Package{}, appErrors.Clone(appErrors.ErrValidation, "no published plan for the selected package type, frequency and duration")
	}

	credits := plan.Credits()
	payload := platform.CreatePackagePayload{
		StudentID:       data.StudentID,
		ParentID:        data.ParentID,
		PackageType:     data.PackageType,
		SessionsPerWeek: data.SessionsPerWeek,
		PlanDuration:    data.PlanDuration,
		Price:           pricing.NumericPrice(plan.Price),
		SessionsCount:   pricing.NumericSessions(plan.Sessions),
		Credits:         credits,
		Status:          models.PackageStatusRequestedAssessment,
	}

	created, err := s.purchase.Run(ctx, saga.Input{
		ParentID: data.ParentID,
		Credits:  float64(credits),
		Payload:  payload,
	})
	if err != nil {
		return models.Package{}, err
	}

	s.store.ApplyCreate(created)
	s.logger.Info("package created",
		zap.String("package_id", created.ID),
		zap.String("student_id", data.StudentID),
		zap.Int("credits", credits),
	)
	return created, nil
}

// Update sends a partial patch. A package moving to (or already in) the
// scheduled status must carry a valid http or https meeting link.
func (s *PackageService) Update(ctx context.Context, id string, data models.UpdatePackageData) (models.Package, error) {
	if err := validID(id); err != nil {
		return models.Package{}, err
	}
	if err := s.validator.Struct(data); err != nil {
		return models.Package{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	if err := s.checkMeetingLink(id, data); err != nil {
		return models.Package{}, err
	}

	updated, err := s.client.UpdatePackage(ctx, id, data)
	if err != nil {
		return models.Package{}, err
	}

	s.store.ApplyUpdate(id, data)
	return updated, nil
}

// checkMeetingLink enforces the scheduled-status link invariant against
// the combination of the patch and the locally cached record.
func (s *PackageService) checkMeetingLink(id string, data models.UpdatePackageData) error {
	current, _ := s.store.Get(id)

	status := current.Status
	if data.Status != nil {
		status = *data.Status
	}
	if status != models.PackageStatusScheduled {
		return nil
	}

	link := current.MeetingLink
	if data.MeetingLink != nil {
		link = *data.MeetingLink
	}
	if !validMeetingLink(link) {
		return appErrors.Clone(appErrors.ErrValidation, "a scheduled package requires a valid http or https meeting link")
	}
	return nil
}

func validMeetingLink(link string) bool {
	if link == "" {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// AssignTutor pairs a tutor with a package and records the pairing
// locally.
func (s *PackageService) AssignTutor(ctx context.Context, id string, data models.AssignTutorData) (models.Package, error) {
	if err := validID(id); err != nil {
		return models.Package{}, err
	}
	if err := s.validator.Struct(data); err != nil {
		return models.Package{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	updated, err := s.client.AssignTutor(ctx, id, data.TutorID)
	if err != nil {
		return models.Package{}, err
	}

	s.store.ApplyAssignTutor(id, updated.TutorID, updated.TutorName)
	return updated, nil
}

// PricingView is the catalogue response for the pricing endpoint.
type PricingView struct {
	Types map[string]pricing.TypeInfo          `json:"types"`
	Plans map[string]map[string][]pricing.Plan `json:"plans"`
}

// Pricing returns the full published catalogue.
func (s *PackageService) Pricing() PricingView {
	return PricingView{Types: pricing.Types(), Plans: pricing.Catalogue()}
}

// LastError exposes the store's refresh error for list views.
func (s *PackageService) LastError() string { return s.store.LastError() }

// Loading exposes the store's loading flag.
func (s *PackageService) Loading() bool { return s.store.Loading() }
