package middleware

import (
	"bytes"
	"compress/gzip"
	"dashboard/auth"
	"dashboard/config"
	"dashboard/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func compressedServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		switch r.URL.Path {
		case "/br":
			bw := brotli.NewWriter(&buf)
			bw.Write([]byte(`{"ok":true}`))
			bw.Close()
			w.Header().Set("Content-Encoding", "br")
		case "/gzip":
			gw := gzip.NewWriter(&buf)
			gw.Write([]byte(`{"ok":true}`))
			gw.Close()
			w.Header().Set("Content-Encoding", "gzip")
		}
		w.Write(buf.Bytes())
	}))
}

func TestDecompressMiddleware(t *testing.T) {
	server := compressedServer(t)
	defer server.Close()

	client := resty.New().
		SetBaseURL(server.URL).
		SetHeader("Accept-Encoding", "gzip, br").
		OnAfterResponse(DecompressMiddleware)

	for _, path := range []string{"/br", "/gzip"} {
		resp, err := client.R().Get(path)
		if err != nil {
			t.Fatal(err)
		}
		if resp.String() != `{"ok":true}` {
			t.Errorf("%s: expected a decoded body, got %q", path, resp.String())
		}
	}
}

func protectedRouter(admin bool) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(false)}
	if admin {
		handlers = append(handlers, AdminOnly())
	}
	handlers = append(handlers, func(c *gin.Context) {
		user, _ := GetUser(c)
		c.String(http.StatusOK, user.Username)
	})
	r.GET("/private", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	auth.SecretKey = []byte("test-secret")
	token, err := auth.GenerateToken(model.UserDto{Username: "admin", Role: model.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	userToken, _ := auth.GenerateToken(model.UserDto{Username: "viewer", Role: model.RoleUser})

	cases := []struct {
		name   string
		admin  bool
		setup  func(r *http.Request)
		status int
	}{
		{"no token", false, func(r *http.Request) {}, http.StatusUnauthorized},
		{"garbage", false, func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"cookie", false, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token}) }, http.StatusOK},
		{"bearer", true, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"not admin", true, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+userToken) }, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			protectedRouter(tc.admin).ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	manager := config.NewConfigManager(&model.RuntimeConfig{RateLimiter: true})
	r := gin.New()
	r.Use(RateLimiter(manager))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	limited := 0
	for i := 0; i < burst+5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
			if w.Header().Get("Retry-After") == "" {
				t.Errorf("expected a Retry-After header")
			}
		}
	}
	if limited == 0 {
		t.Errorf("expected requests beyond the burst to be limited")
	}

	manager.UpdateConfig(&model.RuntimeConfig{RateLimiter: false})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected the limiter to be bypassed when disabled, got %d", w.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryMiddleware)
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
