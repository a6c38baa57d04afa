// Package platform wraps the tutoring-platform backend API. One client
// serves every entity; the bearer token is read fresh from the credential
// store on each call so a logout is observed immediately.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

// TokenSource yields the current bearer token. An absent token must be
// reported as an error before any request is sent.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CallRecorder observes the outcome of each backend call.
type CallRecorder interface {
	RecordPlatformCall(operation string, err error)
}

// Client is the HTTP client for the platform backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	metrics CallRecorder
	logger  *zap.Logger
}

// NewClient builds a platform client. The timeout is the only failure
// policy; there are no automatic retries.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// SetMetrics attaches an optional call recorder.
func (c *Client) SetMetrics(metrics CallRecorder) {
	c.metrics = metrics
}

type request struct {
	Method   string
	Path     string
	Query    url.Values
	Body     interface{}
	Headers  map[string]string
	SkipAuth bool
}

type remoteError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, spec request, out interface{}) (err error) {
	if c.metrics != nil {
		defer func() { c.metrics.RecordPlatformCall(spec.Method+" "+opLabel(spec.Path), err) }()
	}

	var reqBody io.Reader
	if spec.Body != nil {
		encoded, err := json.Marshal(spec.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, c.baseURL+spec.Path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if len(spec.Query) > 0 {
		req.URL.RawQuery = spec.Query.Encode()
	}
	req.Header.Set("Content-Type", "application/json")

	if !spec.SkipAuth {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range spec.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, appErrors.ErrRemote.Message)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, appErrors.ErrRemote.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("platform request failed",
			zap.String("method", spec.Method),
			zap.String("path", spec.Path),
			zap.Int("status", resp.StatusCode),
		)
		return &appErrors.Error{
			Code:    appErrors.ErrRemote.Code,
			Status:  resp.StatusCode,
			Message: extractMessage(body),
		}
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, "decode platform response")
		}
	}

	return nil
}

// opLabel collapses a request path to its entity collection so metric
// labels stay low-cardinality.
func opLabel(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) >= 2 {
		return "/" + parts[0] + "/" + parts[1]
	}
	return path
}

// extractMessage pulls the message field out of an error body, falling
// back to a generic message when the body is not JSON.
func extractMessage(body []byte) string {
	var remote remoteError
	if err := json.Unmarshal(body, &remote); err == nil {
		if remote.Message != "" {
			return remote.Message
		}
		if remote.Error != "" {
			return remote.Error
		}
	}
	return appErrors.ErrRemote.Message
}
