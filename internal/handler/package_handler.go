package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/service"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
	"github.com/mathcode/tutor-admin-api/pkg/response"
)

// PackageHandler exposes tutoring bundle endpoints.
type PackageHandler struct {
	packages *service.PackageService
}

// NewPackageHandler constructs PackageHandler.
func NewPackageHandler(packages *service.PackageService) *PackageHandler {
	return &PackageHandler{packages: packages}
}

// List godoc
// @Summary List packages
// @Tags Packages
// @Produce json
// @Param status query string false "Filter by status"
// @Param search query string false "Search student or tutor"
// @Param refresh query bool false "Reload from the platform first"
// @Success 200 {object} response.Envelope
// @Router /packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	var q models.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	if c.Query("refresh") == "true" {
		if _, err := h.packages.Refresh(c.Request.Context()); err != nil {
			response.WithMeta(c, h.packages.List(q), gin.H{"stale": true, "error": h.packages.LastError()})
			return
		}
	}
	response.OK(c, h.packages.List(q))
}

// Get godoc
// @Summary Get package detail
// @Tags Packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Envelope
// @Router /packages/{id} [get]
func (h *PackageHandler) Get(c *gin.Context) {
	pkg, err := h.packages.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pkg)
}

// Create godoc
// @Summary Purchase a package
// @Tags Packages
// @Accept json
// @Produce json
// @Param payload body models.CreatePackageData true "Plan selection"
// @Success 201 {object} response.Envelope
// @Router /packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	var req models.CreatePackageData
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pkg, err := h.packages.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pkg)
}

// Update godoc
// @Summary Update package
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param payload body models.UpdatePackageData true "Partial patch"
// @Success 200 {object} response.Envelope
// @Router /packages/{id} [patch]
func (h *PackageHandler) Update(c *gin.Context) {
	var req models.UpdatePackageData
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pkg, err := h.packages.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pkg)
}

// AssignTutor godoc
// @Summary Assign a tutor to a package
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param payload body models.AssignTutorData true "Tutor reference"
// @Success 200 {object} response.Envelope
// @Router /packages/{id}/assign-tutor [put]
func (h *PackageHandler) AssignTutor(c *gin.Context) {
	var req models.AssignTutorData
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pkg, err := h.packages.AssignTutor(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pkg)
}

// Pricing godoc
// @Summary Published pricing catalogue
// @Tags Packages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /packages/pricing [get]
func (h *PackageHandler) Pricing(c *gin.Context) {
	response.OK(c, h.packages.Pricing())
}
