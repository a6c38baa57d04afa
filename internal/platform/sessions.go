package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/transform"
)

// CreateSessionPayload is the wire shape for session creation. Names are
// already resolved from ids by the caller.
type CreateSessionPayload struct {
	StudentID   string  `json:"studentId,omitempty"`
	StudentName string  `json:"studentName"`
	ParentID    string  `json:"parentId,omitempty"`
	ParentName  string  `json:"parentName"`
	TutorName   string  `json:"tutorName"`
	Subject     string  `json:"subject"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Duration    int     `json:"duration"`
	Status      string  `json:"status"`
	PackageType string  `json:"packageType,omitempty"`
	CreditsUsed float64 `json:"creditsUsed"`
	MeetingLink string  `json:"meetingLink,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// ListSessions fetches every session.
func (c *Client) ListSessions(ctx context.Context) ([]models.Session, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/sessions"}, &raw); err != nil {
		return nil, err
	}

	records, err := decodeSessionList(raw)
	if err != nil {
		return nil, err
	}
	return transform.Sessions(records), nil
}

// GetSession fetches one session by id.
func (c *Client) GetSession(ctx context.Context, id string) (models.Session, error) {
	var raw transform.RawSession
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/sessions/" + id}, &raw); err != nil {
		return models.Session{}, err
	}
	return transform.Session(raw), nil
}

// CreateSession schedules a new session.
func (c *Client) CreateSession(ctx context.Context, payload CreateSessionPayload) (models.Session, error) {
	var raw transform.RawSession
	if err := c.do(ctx, request{Method: http.MethodPost, Path: "/api/sessions", Body: payload}, &raw); err != nil {
		return models.Session{}, err
	}
	return transform.Session(raw), nil
}

// UpdateSession sends a partial patch with only the set fields.
func (c *Client) UpdateSession(ctx context.Context, id string, data models.UpdateSessionData) (models.Session, error) {
	patch := newSessionPatch(data)
	var raw transform.RawSession
	if err := c.do(ctx, request{Method: http.MethodPatch, Path: "/api/sessions/" + id, Body: patch}, &raw); err != nil {
		return models.Session{}, err
	}
	return transform.Session(raw), nil
}

// UpdateSessionStatus moves a session through its lifecycle.
func (c *Client) UpdateSessionStatus(ctx context.Context, id, status string) (models.Session, error) {
	body := map[string]string{"status": status}
	var raw transform.RawSession
	if err := c.do(ctx, request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/api/sessions/%s/status", id),
		Body:   body,
	}, &raw); err != nil {
		return models.Session{}, err
	}
	return transform.Session(raw), nil
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, request{Method: http.MethodDelete, Path: "/api/sessions/" + id}, nil)
}

func newSessionPatch(patch models.UpdateSessionData) map[string]interface{} {
	out := map[string]interface{}{}
	if patch.Subject != nil {
		out["subject"] = *patch.Subject
	}
	if patch.Date != nil {
		out["date"] = *patch.Date
	}
	if patch.Time != nil {
		out["time"] = *patch.Time
	}
	if patch.Duration != nil {
		out["duration"] = *patch.Duration
	}
	if patch.PackageType != nil {
		out["packageType"] = *patch.PackageType
	}
	if patch.CreditsUsed != nil {
		out["creditsUsed"] = *patch.CreditsUsed
	}
	if patch.MeetingLink != nil {
		out["meetingLink"] = *patch.MeetingLink
	}
	if patch.Notes != nil {
		out["notes"] = *patch.Notes
	}
	if patch.SessionNotes != nil {
		out["sessionNotes"] = *patch.SessionNotes
	}
	if patch.Rating != nil {
		out["rating"] = *patch.Rating
	}
	if patch.Feedback != nil {
		out["feedback"] = *patch.Feedback
	}
	return out
}

func decodeSessionList(raw json.RawMessage) ([]transform.RawSession, error) {
	var bare []transform.RawSession
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Items    []transform.RawSession `json:"items"`
		Sessions []transform.RawSession `json:"sessions"`
		Data     []transform.RawSession `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode session list: %w", err)
	}
	switch {
	case envelope.Items != nil:
		return envelope.Items, nil
	case envelope.Sessions != nil:
		return envelope.Sessions, nil
	case envelope.Data != nil:
		return envelope.Data, nil
	}
	return []transform.RawSession{}, nil
}
