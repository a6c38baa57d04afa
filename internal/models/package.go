package models

import "time"

// Package lifecycle statuses, in rough chronological order.
const (
	PackageStatusRequestedAssessment = "requested_assessment"
	PackageStatusPendingPayment      = "pending_payment"
	PackageStatusApproved            = "approved"
	PackageStatusScheduled           = "scheduled"
	PackageStatusCompleted           = "completed"
	PackageStatusCancelled           = "cancelled"
	PackageStatusNoShow              = "no-show"
)

// Package types match the pricing table axes.
const (
	PackageTypeOneOnTwo = "1-2"
	PackageTypeOneOnOne = "1-1"
)

// Package is a purchased tutoring bundle for one student, linked to the
// parent account that requested it. Price, sessions count and credits are
// derived from the pricing table for the chosen plan triple.
type Package struct {
	ID              string    `json:"id"`
	StudentID       string    `json:"student_id"`
	StudentName     string    `json:"student_name,omitempty"`
	ParentID        string    `json:"parent_id,omitempty"`
	TutorID         string    `json:"tutor_id,omitempty"`
	TutorName       string    `json:"tutor_name,omitempty"`
	PackageType     string    `json:"package_type"`
	SessionsPerWeek string    `json:"sessions_per_week"`
	PlanDuration    string    `json:"plan_duration"`
	Price           int       `json:"price"`
	SessionsCount   int       `json:"sessions_count"`
	Credits         int       `json:"credits"`
	Status          string    `json:"status"`
	MeetingLink     string    `json:"meeting_link,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// CreatePackageData selects a plan for a student. Price, session count and
// credits are derived server-side from the pricing table. When ParentID is
// set and the plan grants credits, the parent balance is credited before
// the package is created.
type CreatePackageData struct {
	StudentID       string `json:"student_id" validate:"required"`
	ParentID        string `json:"parent_id,omitempty"`
	PackageType     string `json:"package_type" validate:"required,oneof=1-2 1-1"`
	SessionsPerWeek string `json:"sessions_per_week" validate:"required,oneof=2 3 5"`
	PlanDuration    string `json:"plan_duration" validate:"required,oneof=MONTHLY QUARTERLY SEMI-ANNUAL ANNUAL"`
}

// UpdatePackageData is a partial patch. Nil fields are left untouched.
// MeetingLink must be a valid http or https URL while the package is
// scheduled.
type UpdatePackageData struct {
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=requested_assessment pending_payment approved scheduled completed cancelled no-show"`
	Price       *int    `json:"price,omitempty" validate:"omitempty,gte=0"`
	PackageType *string `json:"package_type,omitempty" validate:"omitempty,oneof=1-2 1-1"`
	MeetingLink *string `json:"meeting_link,omitempty"`
	TutorID     *string `json:"tutor_id,omitempty"`
}

// AssignTutorData pairs a tutor with a package.
type AssignTutorData struct {
	TutorID string `json:"tutor_id" validate:"required"`
}
