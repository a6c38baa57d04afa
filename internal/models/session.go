package models

import "time"

// Session statuses.
const (
	SessionStatusScheduled  = "scheduled"
	SessionStatusInProgress = "in-progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
	SessionStatusNoShow     = "no-show"
)

// Session is a single tutoring meeting. Participant names are denormalised
// so list views render without extra lookups. PackageType here is a
// free-text label, unrelated to the Package enum.
type Session struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id,omitempty"`
	StudentName  string    `json:"student_name"`
	ParentID     string    `json:"parent_id,omitempty"`
	ParentName   string    `json:"parent_name"`
	TutorID      string    `json:"tutor_id,omitempty"`
	TutorName    string    `json:"tutor_name"`
	Subject      string    `json:"subject"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Duration     int       `json:"duration"`
	Status       string    `json:"status"`
	PackageType  string    `json:"package_type,omitempty"`
	CreditsUsed  float64   `json:"credits_used"`
	MeetingLink  string    `json:"meeting_link,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	SessionNotes string    `json:"session_notes,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// CreateSessionData schedules a new session. Student and parent ids are
// resolved to display names before the platform call. CreditsUsed is
// derived from the duration unless supplied.
type CreateSessionData struct {
	StudentID   string  `json:"student_id" validate:"required"`
	ParentID    string  `json:"parent_id,omitempty"`
	TutorName   string  `json:"tutor_name" validate:"required"`
	Subject     string  `json:"subject" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	PackageType string  `json:"package_type,omitempty"`
	CreditsUsed float64 `json:"credits_used,omitempty" validate:"omitempty,gt=0"`
	MeetingLink string  `json:"meeting_link,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// UpdateSessionData is a partial patch. Nil fields are left untouched.
// Changing the duration recomputes credits unless an explicit value is
// supplied alongside it.
type UpdateSessionData struct {
	Subject      *string  `json:"subject,omitempty"`
	Date         *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time         *string  `json:"time,omitempty"`
	Duration     *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	PackageType  *string  `json:"package_type,omitempty"`
	CreditsUsed  *float64 `json:"credits_used,omitempty" validate:"omitempty,gt=0"`
	MeetingLink  *string  `json:"meeting_link,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	SessionNotes *string  `json:"session_notes,omitempty"`
	Rating       *int     `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Feedback     *string  `json:"feedback,omitempty"`
}

// UpdateSessionStatusData moves a session through its lifecycle.
type UpdateSessionStatusData struct {
	Status string `json:"status" validate:"required,oneof=scheduled in-progress completed cancelled no-show"`
}
