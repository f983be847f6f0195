package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pim-sync/internal/alert"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/models"
)

type fakeAlerts struct {
	got      []byte
	accepted bool
	err      error
}

func (f *fakeAlerts) HandleAlert(_ context.Context, raw []byte) (bool, error) {
	f.got = raw
	return f.accepted, f.err
}

type fakeJob struct {
	modes  []models.SyncMode
	queued bool
}

func (f *fakeJob) Start(context.Context) error { return nil }
func (f *fakeJob) Stop()                       {}

func (f *fakeJob) Trigger(mode models.SyncMode) bool {
	f.modes = append(f.modes, mode)
	return f.queued
}

func newTestRouter(alerts service.AlertService, job service.SyncJob) http.Handler {
	h := NewHandler(&service.ClientServices{AlertService: alerts, SyncJob: job},
		models.NewAppBuildInfo("1.2.0", "2026-10-01", "abc123"), logger.Nop())
	return h.Init()
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_PushAlert(t *testing.T) {
	tests := []struct {
		name       string
		body       []byte
		alerts     *fakeAlerts
		wantStatus int
	}{
		{
			name:       "accepted",
			body:       []byte{0x01, 0x02},
			alerts:     &fakeAlerts{accepted: true},
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "ignored",
			body:       []byte{0x01},
			alerts:     &fakeAlerts{},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "malformed",
			body:       []byte{0x01},
			alerts:     &fakeAlerts{err: alert.ErrMalformedAlert},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body",
			alerts:     &fakeAlerts{accepted: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "too large",
			body:       make([]byte, maxAlertSize+1),
			alerts:     &fakeAlerts{accepted: true},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.alerts, &fakeJob{})
			req := httptest.NewRequest(http.MethodPost, "/api/alert", bytes.NewReader(tt.body))

			rr := serve(router, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestHandler_PushAlert_Gzip(t *testing.T) {
	payload := []byte("compressed alert")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	alerts := &fakeAlerts{accepted: true}
	req := httptest.NewRequest(http.MethodPost, "/api/alert", &buf)
	req.Header.Set("Content-Encoding", "gzip")

	rr := serve(newTestRouter(alerts, &fakeJob{}), req)
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, payload, alerts.got)

	bad := httptest.NewRequest(http.MethodPost, "/api/alert", bytes.NewReader([]byte("not gzip")))
	bad.Header.Set("Content-Encoding", "gzip")
	assert.Equal(t, http.StatusBadRequest, serve(newTestRouter(alerts, &fakeJob{}), bad).Code)
}

func TestHandler_TriggerSync(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		queued     bool
		wantStatus int
		wantMode   []models.SyncMode
	}{
		{name: "default mode", queued: true, wantStatus: http.StatusAccepted, wantMode: []models.SyncMode{models.SyncTwoWay}},
		{name: "explicit mode", query: "?mode=slow", queued: true, wantStatus: http.StatusAccepted, wantMode: []models.SyncMode{models.SyncSlow}},
		{name: "already queued", queued: false, wantStatus: http.StatusConflict, wantMode: []models.SyncMode{models.SyncTwoWay}},
		{name: "unknown mode", query: "?mode=sideways", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeJob{queued: tt.queued}
			rr := serve(newTestRouter(&fakeAlerts{}, job), httptest.NewRequest(http.MethodPost, "/api/sync"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMode, job.modes)

			if tt.wantStatus != http.StatusBadRequest {
				var resp syncResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.queued, resp.Queued)
				assert.Equal(t, tt.wantMode[0].String(), resp.Mode)
			}
		})
	}
}

func TestHandler_Version(t *testing.T) {
	rr := serve(newTestRouter(&fakeAlerts{}, &fakeJob{}), httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "version=1.2.0 date=2026-10-01 commit=abc123", rr.Body.String())
}

func TestHandler_UnroutedMethodIsNotFound(t *testing.T) {
	router := newTestRouter(&fakeAlerts{}, &fakeJob{})

	assert.Equal(t, http.StatusNotFound, serve(router, httptest.NewRequest(http.MethodGet, "/api/alert", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, httptest.NewRequest(http.MethodDelete, "/api/sync", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, httptest.NewRequest(http.MethodGet, "/nowhere", nil)).Code)
}

func TestHandler_TraceID(t *testing.T) {
	router := newTestRouter(&fakeAlerts{}, &fakeJob{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-from-server")
	assert.Equal(t, "trace-from-server", serve(router, req).Header().Get(traceIDHeader))

	generated := serve(router, httptest.NewRequest(http.MethodGet, "/api/version", nil)).Header().Get(traceIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}
