package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sso-server/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func TestCORS_AllowsFrontendWithCredentials(t *testing.T) {
	handler := NewCORS(config.FrontendConfig{URL: "https://app.example.com"}).Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/auth/onesso/link", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers")), "onboarding")
}

func TestCORS_RejectsOtherOrigins(t *testing.T) {
	handler := NewCORS(config.FrontendConfig{URL: "https://app.example.com"}).Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/auth/onesso/link", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
