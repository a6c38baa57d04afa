package platform

import (
	"context"
	"net/http"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/transform"
)

type loginResponse struct {
	Token string            `json:"token"`
	User  transform.RawUser `json:"user"`
}

// Login exchanges operator credentials for a bearer token. This is the
// only unauthenticated call.
func (c *Client) Login(ctx context.Context, creds models.LoginCredentials) (models.Credentials, error) {
	body := map[string]string{"email": creds.Email, "password": creds.Password}

	var resp loginResponse
	if err := c.do(ctx, request{
		Method:   http.MethodPost,
		Path:     "/api/users/login",
		Body:     body,
		SkipAuth: true,
	}, &resp); err != nil {
		return models.Credentials{}, err
	}

	user := transform.User(resp.User)
	return models.Credentials{
		Token: resp.Token,
		User: models.AdminUser{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Roles:     user.Roles,
		},
	}, nil
}

// Me fetches the profile behind the current token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var raw transform.RawUser
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/users/me"}, &raw); err != nil {
		return models.User{}, err
	}
	return transform.User(raw), nil
}
