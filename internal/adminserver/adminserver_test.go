package adminserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"dish-dispatcher/internal/adminserver"
	"dish-dispatcher/internal/config"
	"dish-dispatcher/internal/kitchen"
)

func TestAdminServer_Healthz(t *testing.T) {
	k := kitchen.New(config.DefaultConfig(), zaptest.NewLogger(t))
	go k.Run()
	defer k.Stop()

	srv := adminserver.New(k, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminServer_Report(t *testing.T) {
	k := kitchen.New(config.DefaultConfig(), zaptest.NewLogger(t))
	go k.Run()
	defer k.Stop()

	srv := adminserver.New(k, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report kitchen.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 0, report.OutstandingTickets)
}
