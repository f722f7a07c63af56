package routes

import (
	"context"
	"dashboard/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg, err := config.ParseConfigs(`{"dbDriver":"sqlite3","dbDsn":":memory:","jwtSecret":"test","benchmark":"NIFTY 50"}`)
	if err != nil {
		t.Fatal(err)
	}

	svc, cleanup, err := Bootstrap(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	r := SetupRouter(cfg, svc)

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/indices/returns", http.StatusUnauthorized},
		{http.MethodPost, "/api/indices/refresh", http.StatusUnauthorized},
		{http.MethodGet, "/api/backtest/recent", http.StatusUnauthorized},
		{http.MethodGet, "/openapi.json", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != tc.status {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, w.Code)
		}
	}
}
