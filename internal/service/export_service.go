package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mathcode/tutor-admin-api/internal/calendar"
	"github.com/mathcode/tutor-admin-api/internal/store"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
	"github.com/mathcode/tutor-admin-api/pkg/export"
	"github.com/mathcode/tutor-admin-api/pkg/jobs"
)

// Export types.
const (
	ExportTypeSessionsWeek = "sessions_week"
	ExportTypeUsers        = "users"
)

// Export job statuses.
const (
	ExportStatusPending = "pending"
	ExportStatusDone    = "done"
	ExportStatusFailed  = "failed"
)

// ExportRequest asks for one report.
type ExportRequest struct {
	Type string `json:"type" validate:"required,oneof=sessions_week users"`
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ExportJob tracks one report through the queue.
type ExportJob struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Filename    string    `json:"filename,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type exportCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ExportService renders weekly schedule PDFs and user CSVs off the
// request path through a worker queue. Results live in the cache until
// their TTL expires.
type ExportService struct {
	queue     *jobs.Queue
	cache     exportCache
	sessions  *store.SessionStore
	users     *store.UserStore
	csv       *export.CSVRenderer
	pdf       *export.PDFRenderer
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// ExportConfig tunes the worker pool and result retention.
type ExportConfig struct {
	Workers    int
	MaxRetries int
	ResultTTL  time.Duration
}

// NewExportService constructs the service and its queue. Call Start
// before enqueueing.
func NewExportService(cache exportCache, sessionStore *store.SessionStore, userStore *store.UserStore, cfg ExportConfig, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
	}

	s := &ExportService{
		cache:     cache,
		sessions:  sessionStore,
		users:     userStore,
		csv:       export.NewCSVRenderer(),
		pdf:       export.NewPDFRenderer(),
		ttl:       cfg.ResultTTL,
		validator: validate,
		logger:    logger,
	}
	s.queue = jobs.NewQueue("exports", s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start begins queue consumption.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Enqueue accepts an export request and returns the pending job.
func (s *ExportService) Enqueue(ctx context.Context, req ExportRequest) (ExportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return ExportJob{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	job := ExportJob{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Status:    ExportStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.saveJob(ctx, job); err != nil {
		return ExportJob{}, err
	}

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: req.Type, Payload: req.Date}); err != nil {
		return ExportJob{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "export queue unavailable")
	}
	return job, nil
}

// Get returns the job record and, once done, the rendered bytes.
func (s *ExportService) Get(ctx context.Context, id string) (ExportJob, []byte, error) {
	if err := validID(id); err != nil {
		return ExportJob{}, nil, err
	}

	var job ExportJob
	if err := s.cache.Get(ctx, jobKey(id), &job); err != nil {
		if appErrors.Is(err, appErrors.ErrCacheMiss) {
			return ExportJob{}, nil, appErrors.Clone(appErrors.ErrNotFound, "export not found or expired")
		}
		return ExportJob{}, nil, err
	}

	if job.Status != ExportStatusDone {
		return job, nil, nil
	}

	var data []byte
	if err := s.cache.Get(ctx, dataKey(id), &data); err != nil {
		if appErrors.Is(err, appErrors.ErrCacheMiss) {
			return ExportJob{}, nil, appErrors.Clone(appErrors.ErrNotFound, "export result expired")
		}
		return ExportJob{}, nil, err
	}
	return job, data, nil
}

func (s *ExportService) handle(ctx context.Context, job jobs.Job) error {
	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)

	switch job.Type {
	case ExportTypeSessionsWeek:
		refDate, _ := job.Payload.(string)
		data, filename, err = s.renderSessionsWeek(refDate)
		contentType = "application/pdf"
	case ExportTypeUsers:
		data, filename, err = s.renderUsers()
		contentType = "text/csv"
	default:
		err = fmt.Errorf("unknown export type %q", job.Type)
	}

	stored := ExportJob{ID: job.ID, Type: job.Type, CreatedAt: job.Enqueued}
	if err != nil {
		stored.Status = ExportStatusFailed
		stored.Error = err.Error()
		if saveErr := s.saveJob(ctx, stored); saveErr != nil {
			s.logger.Warn("failed to persist export failure", zap.String("job_id", job.ID), zap.Error(saveErr))
		}
		return err
	}

	stored.Status = ExportStatusDone
	stored.Filename = filename
	stored.ContentType = contentType
	if err := s.cache.Set(ctx, dataKey(job.ID), data, s.ttl); err != nil {
		return fmt.Errorf("store export result: %w", err)
	}
	return s.saveJob(ctx, stored)
}

func (s *ExportService) renderSessionsWeek(refDate string) ([]byte, string, error) {
	ref := time.Now()
	if refDate != "" {
		parsed, err := time.Parse(calendar.DayFormat, refDate)
		if err != nil {
			return nil, "", fmt.Errorf("parse export date: %w", err)
		}
		ref = parsed
	}

	grouped := calendar.GroupByDate(s.sessions.All(), ref)
	start := calendar.WeekStart(ref)

	table := export.Table{
		Headers: []string{"Date", "Time", "Student", "Tutor", "Subject", "Duration", "Credits", "Status"},
	}
	for _, day := range calendar.WeekDates(start) {
		key := day.Format(calendar.DayFormat)
		daySessions := grouped[key]
		sort.SliceStable(daySessions, func(i, j int) bool {
			return daySessions[i].Time < daySessions[j].Time
		})
		for _, sess := range daySessions {
			table.Rows = append(table.Rows, map[string]string{
				"Date":     sess.Date,
				"Time":     sess.Time,
				"Student":  sess.StudentName,
				"Tutor":    sess.TutorName,
				"Subject":  sess.Subject,
				"Duration": fmt.Sprintf("%d min", sess.Duration),
				"Credits":  strconv.FormatFloat(sess.CreditsUsed, 'f', -1, 64),
				"Status":   sess.Status,
			})
		}
	}

	weekLabel := start.Format(calendar.DayFormat)
	data, err := s.pdf.Render(table, export.PDFOptions{
		Title:     "Sessions for week of " + weekLabel,
		Landscape: true,
	})
	if err != nil {
		return nil, "", err
	}
	return data, "sessions-week-" + weekLabel + ".pdf", nil
}

func (s *ExportService) renderUsers() ([]byte, string, error) {
	table := export.Table{
		Headers: []string{"ID", "Name", "Email", "Roles", "Status", "Credits"},
	}
	for _, u := range s.users.All() {
		table.Rows = append(table.Rows, map[string]string{
			"ID":      u.ID,
			"Name":    u.FullName,
			"Email":   u.Email,
			"Roles":   strings.Join(u.Roles, "|"),
			"Status":  u.Status,
			"Credits": strconv.FormatFloat(u.Credits, 'f', -1, 64),
		})
	}

	data, err := s.csv.Render(table)
	if err != nil {
		return nil, "", err
	}
	return data, "users-" + time.Now().Format(calendar.DayFormat) + ".csv", nil
}

func (s *ExportService) saveJob(ctx context.Context, job ExportJob) error {
	return s.cache.Set(ctx, jobKey(job.ID), job, s.ttl)
}

func jobKey(id string) string  { return "export:job:" + id }
func dataKey(id string) string { return "export:data:" + id }
