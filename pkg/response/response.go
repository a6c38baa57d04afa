package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// JSON writes a success envelope with the given status.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Data: data})
}

// OK writes a 200 envelope.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent writes a 204 with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 envelope with pagination details.
func Paginated(c *gin.Context, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Envelope{Data: data, Pagination: p})
}

// WithMeta writes a 200 envelope carrying free-form metadata.
func WithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, Envelope{Data: data, Meta: meta})
}

// Error converts any error into its envelope form.
func Error(c *gin.Context, err error) {
	e := appErrors.FromError(err)
	c.JSON(e.Status, Envelope{Error: &ErrorBody{Code: e.Code, Message: e.Message}})
}
