package models

// DashboardStats is the overview snapshot shown on the console landing page.
type DashboardStats struct {
	TotalStudents    int     `json:"total_students"`
	TotalTutors      int     `json:"total_tutors"`
	ActivePackages   int     `json:"active_packages"`
	SessionsThisWeek int     `json:"sessions_this_week"`
	CreditsInFlight  float64 `json:"credits_in_flight"`
}
