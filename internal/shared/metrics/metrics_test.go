package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAuth(reg)

	m.Login("onesso", OutcomeNewUser)
	m.Login("onesso", OutcomeNewUser)
	m.Login("onesso", OutcomeFailed)
	m.OrganizationLink(true)
	m.OrganizationLink(false)
	m.NewsletterFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.logins.WithLabelValues("onesso", OutcomeNewUser)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("onesso", OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orgLinks.WithLabelValues("linked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orgLinks.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.newsletterFails))
}

func TestAuth_NilIsNoop(t *testing.T) {
	var m *Auth

	assert.NotPanics(t, func() {
		m.Login("onesso", OutcomeExistingUser)
		m.OrganizationLink(true)
		m.NewsletterFailure()
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewAuth(reg).Login("onesso", OutcomeExistingUser)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sso_auth_logins_total{outcome="existing_user",provider="onesso"} 1`)
}
