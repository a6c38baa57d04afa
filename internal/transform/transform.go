// Package transform maps raw platform JSON records onto canonical console
// entities, tolerating the backend's field inconsistencies. Transformers
// never fail; anything missing degrades to a safe default.
package transform

import (
	"strings"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/pricing"
)

// RawUser is a platform user record as received over the wire. The backend
// emits either "_id" or "id" depending on the endpoint.
type RawUser struct {
	MongoID    string   `json:"_id"`
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	FullName   string   `json:"fullName"`
	Phone      string   `json:"phone"`
	Roles      []string `json:"roles"`
	Status     string   `json:"status"`
	Credits    float64  `json:"credits"`
	Guardians  []string `json:"guardians"`
	GuardianOf []string `json:"guardianOf"`
	School     string   `json:"school"`
	GradeLevel string   `json:"gradeLevel"`
}

// RawPackage is a platform package record.
type RawPackage struct {
	MongoID         string `json:"_id"`
	ID              string `json:"id"`
	StudentID       string `json:"studentId"`
	StudentName     string `json:"studentName"`
	ParentID        string `json:"parentId"`
	TutorID         string `json:"tutorId"`
	TutorName       string `json:"tutorName"`
	PackageType     string `json:"packageType"`
	SessionsPerWeek string `json:"sessionsPerWeek"`
	PlanDuration    string `json:"planDuration"`
	Price           int    `json:"price"`
	SessionsCount   int    `json:"sessionsCount"`
	Credits         int    `json:"credits"`
	Status          string `json:"status"`
	MeetingLink     string `json:"meetingLink"`
}

// RawSession is a platform session record.
type RawSession struct {
	MongoID      string  `json:"_id"`
	ID           string  `json:"id"`
	StudentID    string  `json:"studentId"`
	StudentName  string  `json:"studentName"`
	ParentID     string  `json:"parentId"`
	ParentName   string  `json:"parentName"`
	TutorID      string  `json:"tutorId"`
	TutorName    string  `json:"tutorName"`
	Subject      string  `json:"subject"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Duration     int     `json:"duration"`
	Status       string  `json:"status"`
	PackageType  string  `json:"packageType"`
	CreditsUsed  float64 `json:"creditsUsed"`
	MeetingLink  string  `json:"meetingLink"`
	Notes        string  `json:"notes"`
	SessionNotes string  `json:"sessionNotes"`
	Rating       int     `json:"rating"`
	Feedback     string  `json:"feedback"`
}

func pickID(mongoID, id string) string {
	if mongoID != "" {
		return mongoID
	}
	return id
}

// User maps a raw record to the canonical user shape. Roles default to
// student, status to active, and the relation lists to empty slices.
func User(raw RawUser) models.User {
	u := models.User{
		ID:         pickID(raw.MongoID, raw.ID),
		Email:      raw.Email,
		FirstName:  raw.FirstName,
		LastName:   raw.LastName,
		FullName:   raw.FullName,
		Phone:      raw.Phone,
		Roles:      raw.Roles,
		Status:     raw.Status,
		Credits:    raw.Credits,
		Guardians:  raw.Guardians,
		GuardianOf: raw.GuardianOf,
		School:     raw.School,
		GradeLevel: raw.GradeLevel,
	}

	if len(u.Roles) == 0 {
		u.Roles = []string{models.RoleStudent}
	}
	if u.Status == "" {
		u.Status = models.UserStatusActive
	}
	if u.Guardians == nil {
		u.Guardians = []string{}
	}
	if u.GuardianOf == nil {
		u.GuardianOf = []string{}
	}
	if u.FullName == "" {
		u.FullName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}

	return u
}

// Package maps a raw record to the canonical package shape.
func Package(raw RawPackage) models.Package {
	p := models.Package{
		ID:              pickID(raw.MongoID, raw.ID),
		StudentID:       raw.StudentID,
		StudentName:     raw.StudentName,
		ParentID:        raw.ParentID,
		TutorID:         raw.TutorID,
		TutorName:       raw.TutorName,
		PackageType:     raw.PackageType,
		SessionsPerWeek: raw.SessionsPerWeek,
		PlanDuration:    raw.PlanDuration,
		Price:           raw.Price,
		SessionsCount:   raw.SessionsCount,
		Credits:         raw.Credits,
		Status:          raw.Status,
		MeetingLink:     raw.MeetingLink,
	}

	if p.Status == "" {
		p.Status = models.PackageStatusRequestedAssessment
	}

	return p
}

// Session maps a raw record to the canonical session shape. A zero
// creditsUsed is recomputed from the duration so rendered totals never
// show blank.
func Session(raw RawSession) models.Session {
	s := models.Session{
		ID:           pickID(raw.MongoID, raw.ID),
		StudentID:    raw.StudentID,
		StudentName:  raw.StudentName,
		ParentID:     raw.ParentID,
		ParentName:   raw.ParentName,
		TutorID:      raw.TutorID,
		TutorName:    raw.TutorName,
		Subject:      raw.Subject,
		Date:         raw.Date,
		Time:         raw.Time,
		Duration:     raw.Duration,
		Status:       raw.Status,
		PackageType:  raw.PackageType,
		CreditsUsed:  raw.CreditsUsed,
		MeetingLink:  raw.MeetingLink,
		Notes:        raw.Notes,
		SessionNotes: raw.SessionNotes,
		Rating:       raw.Rating,
		Feedback:     raw.Feedback,
	}

	if s.Status == "" {
		s.Status = models.SessionStatusScheduled
	}
	if s.CreditsUsed == 0 && s.Duration > 0 {
		s.CreditsUsed = pricing.CalculateCredits(s.Duration)
	}

	return s
}

// Users maps a slice of raw records, preserving order.
func Users(raw []RawUser) []models.User {
	out := make([]models.User, len(raw))
	for i, r := range raw {
		out[i] = User(r)
	}
	return out
}

// Packages maps a slice of raw records, preserving order.
func Packages(raw []RawPackage) []models.Package {
	out := make([]models.Package, len(raw))
	for i, r := range raw {
		out[i] = Package(r)
	}
	return out
}

// Sessions maps a slice of raw records, preserving order.
func Sessions(raw []RawSession) []models.Session {
	out := make([]models.Session, len(raw))
	for i, r := range raw {
		out[i] = Session(r)
	}
	return out
}
