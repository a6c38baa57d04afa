package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mathcode/tutor-admin-api/internal/calendar"
	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/platform"
	"github.com/mathcode/tutor-admin-api/internal/pricing"
	"github.com/mathcode/tutor-admin-api/internal/store"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type sessionClient interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	GetSession(ctx context.Context, id string) (models.Session, error)
	CreateSession(ctx context.Context, payload platform.CreateSessionPayload) (models.Session, error)
	UpdateSession(ctx context.Context, id string, data models.UpdateSessionData) (models.Session, error)
	UpdateSessionStatus(ctx context.Context, id, status string) (models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type nameResolver interface {
	GetUser(ctx context.Context, id string) (models.User, error)
}

// SessionService manages tutoring meetings, including the weekly calendar
// view.
type SessionService struct {
	client    sessionClient
	users     nameResolver
	store     *store.SessionStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs the service.
func NewSessionService(client sessionClient, users nameResolver, sessionStore *store.SessionStore, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		client:    client,
		users:     users,
		store:     sessionStore,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh reloads the list from the platform, keeping stale data on
// failure.
func (s *SessionService) Refresh(ctx context.Context) ([]models.Session, error) {
	s.store.SetLoading(true)
	sessions, err := s.client.ListSessions(ctx)
	if err != nil {
		s.store.Fail(err)
		return s.store.All(), err
	}
	s.store.Replace(sessions)
	return sessions, nil
}

// List returns the cached list filtered by status and search text.
func (s *SessionService) List(q models.ListQuery) []models.Session {
	sessions := s.store.All()
	if q.Status == "" && q.Search == "" {
		return sessions
	}

	needle := strings.ToLower(q.Search)
	filtered := make([]models.Session, 0, len(sessions))
	for _, sess := range sessions {
		if q.Status != "" && sess.Status != q.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(sess.StudentName), needle) &&
			!strings.Contains(strings.ToLower(sess.TutorName), needle) &&
			!strings.Contains(strings.ToLower(sess.Subject), needle) {
			continue
		}
		filtered = append(filtered, sess)
	}
	return filtered
}

// Get fetches one session from the platform.
func (s *SessionService) Get(ctx context.Context, id string) (models.Session, error) {
	if err := validID(id); err != nil {
		return models.Session{}, err
	}
	return s.client.GetSession(ctx, id)
}

// Create resolves the student and parent ids to display names, derives
// credits from the duration, then schedules the session.
func (s *SessionService) Create(ctx context.Context, data models.CreateSessionData) (models.Session, error) {
	if err := s.validator.Struct(data); err != nil {
		return models.Session{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	student, err := s.users.GetUser(ctx, data.StudentID)
	if err != nil {
		return models.Session{}, err
	}

	parentName := ""
	if data.ParentID != "" {
		parent, err := s.users.GetUser(ctx, data.ParentID)
		if err != nil {
			return models.Session{}, err
		}
		parentName = parent.FullName
	}

	creditsUsed := data.CreditsUsed
	if creditsUsed == 0 {
		creditsUsed = pricing.CalculateCredits(data.Duration)
	}

	payload := platform.CreateSessionPayload{
		StudentID:   data.StudentID,
		StudentName: student.FullName,
		ParentID:    data.ParentID,
		ParentName:  parentName,
		TutorName:   data.TutorName,
		Subject:     data.Subject,
		Date:        data.Date,
		Time:        data.Time,
		Duration:    data.Duration,
		Status:      models.SessionStatusScheduled,
		PackageType: data.PackageType,
		CreditsUsed: creditsUsed,
		MeetingLink: data.MeetingLink,
		Notes:       data.Notes,
	}

	created, err := s.client.CreateSession(ctx, payload)
	if err != nil {
		return models.Session{}, err
	}

	s.store.ApplyCreate(created)
	return created, nil
}

// Update sends a partial patch. A changed duration recomputes credits
// unless an explicit value accompanies it.
func (s *SessionService) Update(ctx context.Context, id string, data models.UpdateSessionData) (models.Session, error) {
	if err := validID(id); err != nil {
		return models.Session{}, err
	}
	if err := s.validator.Struct(data); err != nil {
		return models.Session{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	if data.Duration != nil && data.CreditsUsed == nil {
		derived := pricing.CalculateCredits(*data.Duration)
		data.CreditsUsed = &derived
	}

	updated, err := s.client.UpdateSession(ctx, id, data)
	if err != nil {
		return models.Session{}, err
	}

	s.store.ApplyUpdate(id, data)
	return updated, nil
}

// UpdateStatus moves a session through its lifecycle.
func (s *SessionService) UpdateStatus(ctx context.Context, id string, data models.UpdateSessionStatusData) (models.Session, error) {
	if err := validID(id); err != nil {
		return models.Session{}, err
	}
	if err := s.validator.Struct(data); err != nil {
		return models.Session{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	updated, err := s.client.UpdateSessionStatus(ctx, id, data.Status)
	if err != nil {
		return models.Session{}, err
	}

	s.store.ApplyStatus(id, data.Status)
	return updated, nil
}

// Delete removes a session. Sessions that are currently in progress
// cannot be deleted.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if current, ok := s.store.Get(id); ok && current.Status == models.SessionStatusInProgress {
		return appErrors.Clone(appErrors.ErrConflict, "a session in progress cannot be deleted")
	}

	if err := s.client.DeleteSession(ctx, id); err != nil {
		return err
	}
	s.store.ApplyDelete(id)
	return nil
}

// WeekView is the calendar response for one Monday-anchored week.
type WeekView struct {
	WeekStart string                      `json:"week_start"`
	Days      []string                    `json:"days"`
	Sessions  map[string][]models.Session `json:"sessions"`
	Jumped    bool                        `json:"jumped"`
}

// Week groups the cached sessions into the week containing ref. When the
// requested week is empty and jump is set, the view snaps to the week of
// the session nearest to today.
func (s *SessionService) Week(refDate string, jump bool) (WeekView, error) {
	ref := s.now()
	if refDate != "" {
		parsed, err := time.Parse(calendar.DayFormat, refDate)
		if err != nil {
			return WeekView{}, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
		}
		ref = parsed
	}

	sessions := s.store.All()
	grouped := calendar.GroupByDate(sessions, ref)
	jumped := false

	if len(grouped) == 0 && jump {
		if nearest, ok := calendar.NearestWeek(sessions, s.now()); ok {
			ref = nearest
			grouped = calendar.GroupByDate(sessions, ref)
			jumped = true
		}
	}

	start := calendar.WeekStart(ref)
	days := make([]string, 0, 7)
	for _, d := range calendar.WeekDates(start) {
		days = append(days, d.Format(calendar.DayFormat))
	}

	return WeekView{
		WeekStart: start.Format(calendar.DayFormat),
		Days:      days,
		Sessions:  grouped,
		Jumped:    jumped,
	}, nil
}

// LastError exposes the store's refresh error for list views.
func (s *SessionService) LastError() string { return s.store.LastError() }

// Loading exposes the store's loading flag.
func (s *SessionService) Loading() bool { return s.store.Loading() }
