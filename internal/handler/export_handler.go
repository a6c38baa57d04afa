package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mathcode/tutor-admin-api/internal/service"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
	"github.com/mathcode/tutor-admin-api/pkg/response"
)

type exportService interface {
	Enqueue(ctx context.Context, req service.ExportRequest) (service.ExportJob, error)
	Get(ctx context.Context, id string) (service.ExportJob, []byte, error)
}

// ExportHandler exposes async report endpoints.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Create godoc
// @Summary Request an export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body service.ExportRequest true "Export request"
// @Success 202 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req service.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.exports.Enqueue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job)
}

// Get godoc
// @Summary Fetch an export
// @Tags Exports
// @Produce json
// @Produce application/pdf
// @Produce text/csv
// @Param id path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Get(c *gin.Context) {
	job, data, err := h.exports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	// Pending and failed jobs report their status; finished jobs stream
	// the rendered file.
	if job.Status != service.ExportStatusDone {
		response.OK(c, job)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+job.Filename+`"`)
	c.Data(http.StatusOK, job.ContentType, data)
}
