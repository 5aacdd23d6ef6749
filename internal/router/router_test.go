package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/config"
	"github.com/wellnest/internal/db"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		SessionSecret: "test-secret",
		Analytics: config.AnalyticsConfig{
			InsightsLookbackDays:    30,
			CorrelationLookbackDays: 7,
			CorrelationMinDays:      3,
			PredictionWindowDays:    7,
		},
	}
}

func TestSetupRouterPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db.DB = nil

	r := SetupRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestSetupRouterGuardsAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db.DB = nil

	r := SetupRouter(testConfig())

	for _, path := range []string{"/api/journal", "/api/stats", "/api/insights/weekly", "/api/export/journal"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s, got %d", path, w.Code)
		}
	}
}
