package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sso"

// Login outcomes.
const (
	OutcomeExistingUser = "existing_user"
	OutcomeNewUser      = "new_user"
	OutcomeFailed       = "failed"
)

// Auth counts login flow outcomes. A nil *Auth records nothing.
type Auth struct {
	logins          *prometheus.CounterVec
	orgLinks        *prometheus.CounterVec
	newsletterFails prometheus.Counter
}

func NewAuth(reg prometheus.Registerer) *Auth {
	m := &Auth{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Completed identity provider callbacks by provider and outcome.",
		}, []string{"provider", "outcome"}),
		orgLinks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "organization_links_total",
			Help:      "Organization invitations processed during signup.",
		}, []string{"result"}),
		newsletterFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "newsletter",
			Name:      "registration_failures_total",
			Help:      "Newsletter registrations that failed and were skipped.",
		}),
	}

	reg.MustRegister(m.logins, m.orgLinks, m.newsletterFails)
	return m
}

func (m *Auth) Login(provider, outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(provider, outcome).Inc()
}

func (m *Auth) OrganizationLink(linked bool) {
	if m == nil {
		return
	}
	result := "skipped"
	if linked {
		result = "linked"
	}
	m.orgLinks.WithLabelValues(result).Inc()
}

func (m *Auth) NewsletterFailure() {
	if m == nil {
		return
	}
	m.newsletterFails.Inc()
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
