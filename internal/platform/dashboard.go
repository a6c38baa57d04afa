package platform

import (
	"context"
	"net/http"

	"github.com/mathcode/tutor-admin-api/internal/models"
)

type rawDashboard struct {
	TotalStudents    int     `json:"totalStudents"`
	TotalTutors      int     `json:"totalTutors"`
	ActivePackages   int     `json:"activePackages"`
	SessionsThisWeek int     `json:"sessionsThisWeek"`
	CreditsInFlight  float64 `json:"creditsInFlight"`
}

// FetchDashboard pulls the platform's overview counters.
func (c *Client) FetchDashboard(ctx context.Context) (models.DashboardStats, error) {
	var raw rawDashboard
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/dashboard"}, &raw); err != nil {
		return models.DashboardStats{}, err
	}

	return models.DashboardStats{
		TotalStudents:    raw.TotalStudents,
		TotalTutors:      raw.TotalTutors,
		ActivePackages:   raw.ActivePackages,
		SessionsThisWeek: raw.SessionsThisWeek,
		CreditsInFlight:  raw.CreditsInFlight,
	}, nil
}
