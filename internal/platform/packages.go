package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/transform"
)

// CreatePackagePayload is the wire shape for package creation. Price,
// sessions count and credits are already derived from the pricing table.
type CreatePackagePayload struct {
	StudentID       string `json:"studentId"`
	ParentID        string `json:"parentId,omitempty"`
	PackageType     string `json:"packageType"`
	SessionsPerWeek string `json:"sessionsPerWeek"`
	PlanDuration    string `json:"planDuration"`
	Price           int    `json:"price"`
	SessionsCount   int    `json:"sessionsCount"`
	Credits         int    `json:"credits"`
	Status          string `json:"status"`
}

// ListPackages fetches every package.
func (c *Client) ListPackages(ctx context.Context) ([]models.Package, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/packages"}, &raw); err != nil {
		return nil, err
	}

	records, err := decodePackageList(raw)
	if err != nil {
		return nil, err
	}
	return transform.Packages(records), nil
}

// GetPackage fetches one package by id.
func (c *Client) GetPackage(ctx context.Context, id string) (models.Package, error) {
	var raw transform.RawPackage
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/packages/" + id}, &raw); err != nil {
		return models.Package{}, err
	}
	return transform.Package(raw), nil
}

// CreatePackage registers a new package.
func (c *Client) CreatePackage(ctx context.Context, payload CreatePackagePayload) (models.Package, error) {
	var raw transform.RawPackage
	if err := c.do(ctx, request{Method: http.MethodPost, Path: "/api/packages", Body: payload}, &raw); err != nil {
		return models.Package{}, err
	}
	return transform.Package(raw), nil
}

// UpdatePackage sends a partial patch with only the set fields.
func (c *Client) UpdatePackage(ctx context.Context, id string, data models.UpdatePackageData) (models.Package, error) {
	patch := newPackagePatch(data)
	var raw transform.RawPackage
	if err := c.do(ctx, request{Method: http.MethodPatch, Path: "/api/packages/" + id, Body: patch}, &raw); err != nil {
		return models.Package{}, err
	}
	return transform.Package(raw), nil
}

// AssignTutor pairs a tutor with a package.
func (c *Client) AssignTutor(ctx context.Context, id, tutorID string) (models.Package, error) {
	body := map[string]string{"tutorId": tutorID}
	var raw transform.RawPackage
	if err := c.do(ctx, request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/packages/%s/assign-tutor", id),
		Body:   body,
	}, &raw); err != nil {
		return models.Package{}, err
	}
	return transform.Package(raw), nil
}

// DeletePackage removes a package. Unused by the current console screens
// but kept for parity with the backend surface.
func (c *Client) DeletePackage(ctx context.Context, id string) error {
	return c.do(ctx, request{Method: http.MethodDelete, Path: "/api/packages/" + id}, nil)
}

func newPackagePatch(patch models.UpdatePackageData) map[string]interface{} {
	out := map[string]interface{}{}
	if patch.Status != nil {
		out["status"] = *patch.Status
	}
	if patch.Price != nil {
		out["price"] = *patch.Price
	}
	if patch.PackageType != nil {
		out["packageType"] = *patch.PackageType
	}
	if patch.MeetingLink != nil {
		out["meetingLink"] = *patch.MeetingLink
	}
	if patch.TutorID != nil {
		out["tutorId"] = *patch.TutorID
	}
	return out
}

func decodePackageList(raw json.RawMessage) ([]transform.RawPackage, error) {
	var bare []transform.RawPackage
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Items    []transform.RawPackage `json:"items"`
		Packages []transform.RawPackage `json:"packages"`
		Data     []transform.RawPackage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode package list: %w", err)
	}
	switch {
	case envelope.Items != nil:
		return envelope.Items, nil
	case envelope.Packages != nil:
		return envelope.Packages, nil
	case envelope.Data != nil:
		return envelope.Data, nil
	}
	return []transform.RawPackage{}, nil
}
