package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mathcode/tutor-admin-api/internal/service"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type fakeExportSrv struct {
	job     service.ExportJob
	data    []byte
	err     error
	lastReq service.ExportRequest
}

func (f *fakeExportSrv) Enqueue(_ context.Context, req service.ExportRequest) (service.ExportJob, error) {
	f.lastReq = req
	return f.job, f.err
}

func (f *fakeExportSrv) Get(context.Context, string) (service.ExportJob, []byte, error) {
	return f.job, f.data, f.err
}

func TestExportHandlerCreateAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{job: service.ExportJob{ID: "job-1", Status: service.ExportStatusPending}}
	h := NewExportHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/exports", strings.NewReader(`{"type":"users"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "users", srv.lastReq.Type)
	assert.Contains(t, rec.Body.String(), `"job-1"`)
}

func TestExportHandlerGetPendingReturnsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeExportSrv{job: service.ExportJob{ID: "job-1", Status: service.ExportStatusPending}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/job-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending"`)
}

func TestExportHandlerGetDoneStreamsFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeExportSrv{
		job: service.ExportJob{
			ID:          "job-1",
			Status:      service.ExportStatusDone,
			Filename:    "users-2024-01-10.csv",
			ContentType: "text/csv",
		},
		data: []byte("ID,Name\n"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/job-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "users-2024-01-10.csv")
	assert.Equal(t, "ID,Name\n", rec.Body.String())
}

func TestExportHandlerGetMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeExportSrv{err: appErrors.ErrNotFound})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/gone", nil)
	c.Params = gin.Params{{Key: "id", Value: "gone"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
