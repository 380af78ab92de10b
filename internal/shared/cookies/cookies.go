package cookies

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	// AuthCookie carries the signed session credential.
	AuthCookie = "auth"
	// ShowOrgCookie tells the frontend which organization a new user just joined.
	ShowOrgCookie = "showorg"
	// OrgHintCookie carries a pending organization invitation across the login redirect.
	OrgHintCookie = "org"
)

const cookieLifetime = 365 * 24 * time.Hour

// Policy writes cookies scoped to the frontend's registrable domain.
// When NotSecured is set (local development over plain HTTP) cookies drop
// Secure/HttpOnly/SameSite=None and every value is also echoed as a response
// header of the same name for clients that cannot read cookies.
type Policy struct {
	Domain     string
	NotSecured bool

	now func() time.Time
}

func NewPolicy(frontendURL string, notSecured bool) *Policy {
	return &Policy{
		Domain:     DomainFromURL(frontendURL),
		NotSecured: notSecured,
		now:        time.Now,
	}
}

func (p *Policy) Set(w http.ResponseWriter, name, value string) {
	cookie := p.base(name)
	cookie.Value = value
	cookie.Expires = p.now().Add(cookieLifetime)

	http.SetCookie(w, cookie)

	if p.NotSecured {
		w.Header().Set(name, value)
	}
}

func (p *Policy) Clear(w http.ResponseWriter, name string) {
	cookie := p.base(name)
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

func (p *Policy) base(name string) *http.Cookie {
	cookie := &http.Cookie{
		Name:   name,
		Path:   "/",
		Domain: p.Domain,
	}

	if !p.NotSecured {
		cookie.Secure = true
		cookie.HttpOnly = true
		cookie.SameSite = http.SameSiteNoneMode
	}

	return cookie
}

// DomainFromURL returns the registrable domain (eTLD+1) of rawURL so the
// cookie is shared between the frontend and backend subdomains. Localhost and
// IP hosts get host-only cookies.
func DomainFromURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := parsedURL.Hostname()
	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}

	return domain
}
