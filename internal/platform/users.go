package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/transform"
)

// ListUsers fetches accounts, optionally filtered by role.
func (c *Client) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	query := url.Values{}
	if role != "" {
		query.Set("role", role)
	}

	var raw json.RawMessage
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/users", Query: query}, &raw); err != nil {
		return nil, err
	}

	records, err := decodeUserList(raw)
	if err != nil {
		return nil, err
	}
	return transform.Users(records), nil
}

// GetUser fetches one account by id.
func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var raw transform.RawUser
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/users/" + id}, &raw); err != nil {
		return models.User{}, err
	}
	return transform.User(raw), nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, data models.CreateUserData) (models.User, error) {
	var raw transform.RawUser
	if err := c.do(ctx, request{Method: http.MethodPost, Path: "/api/users", Body: newUserPayload(data)}, &raw); err != nil {
		return models.User{}, err
	}
	return transform.User(raw), nil
}

// UpdateUser sends a partial patch with only the set fields. The backend
// merges; the client does not.
func (c *Client) UpdateUser(ctx context.Context, id string, data models.UpdateUserData) (models.User, error) {
	patch := newUserPatch(data)
	var raw transform.RawUser
	if err := c.do(ctx, request{Method: http.MethodPatch, Path: "/api/users/" + id, Body: patch}, &raw); err != nil {
		return models.User{}, err
	}
	return transform.User(raw), nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, request{Method: http.MethodDelete, Path: "/api/users/" + id}, nil)
}

// AddCredits applies a signed credit delta to a parent balance. The
// idempotency key makes the mutation safe to replay; compensation calls
// must carry their own key.
func (c *Client) AddCredits(ctx context.Context, id string, delta float64, idempotencyKey string) (models.User, error) {
	body := map[string]interface{}{"credits": delta}
	spec := request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/users/%s/credits", id),
		Body:   body,
	}
	if idempotencyKey != "" {
		spec.Headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	var raw transform.RawUser
	if err := c.do(ctx, spec, &raw); err != nil {
		return models.User{}, err
	}
	return transform.User(raw), nil
}

// LinkGuardian attaches a parent account to a student. The backend keeps
// both sides of the relation in sync.
func (c *Client) LinkGuardian(ctx context.Context, studentID, guardianID string) error {
	body := map[string]string{"guardianId": guardianID}
	return c.do(ctx, request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/users/%s/guardians", studentID),
		Body:   body,
	}, nil)
}

// UnlinkGuardian detaches a parent account from a student.
func (c *Client) UnlinkGuardian(ctx context.Context, studentID, guardianID string) error {
	return c.do(ctx, request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/users/%s/guardians/%s", studentID, guardianID),
	}, nil)
}

// userPayload is the wire shape for user creation, in the backend's
// camelCase field convention.
type userPayload struct {
	Email      string   `json:"email"`
	Password   string   `json:"password,omitempty"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Phone      string   `json:"phone,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	School     string   `json:"school,omitempty"`
	GradeLevel string   `json:"gradeLevel,omitempty"`
}

func newUserPayload(data models.CreateUserData) userPayload {
	return userPayload{
		Email:      data.Email,
		Password:   data.Password,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Phone:      data.Phone,
		Roles:      data.Roles,
		School:     data.School,
		GradeLevel: data.GradeLevel,
	}
}

func newUserPatch(patch models.UpdateUserData) map[string]interface{} {
	out := map[string]interface{}{}
	if patch.Email != nil {
		out["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		out["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		out["lastName"] = *patch.LastName
	}
	if patch.Phone != nil {
		out["phone"] = *patch.Phone
	}
	if patch.Roles != nil {
		out["roles"] = patch.Roles
	}
	if patch.Status != nil {
		out["status"] = *patch.Status
	}
	if patch.School != nil {
		out["school"] = *patch.School
	}
	if patch.GradeLevel != nil {
		out["gradeLevel"] = *patch.GradeLevel
	}
	return out
}

func decodeUserList(raw json.RawMessage) ([]transform.RawUser, error) {
	var bare []transform.RawUser
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Items []transform.RawUser `json:"items"`
		Users []transform.RawUser `json:"users"`
		Data  []transform.RawUser `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	switch {
	case envelope.Items != nil:
		return envelope.Items, nil
	case envelope.Users != nil:
		return envelope.Users, nil
	case envelope.Data != nil:
		return envelope.Data, nil
	}
	return []transform.RawUser{}, nil
}
