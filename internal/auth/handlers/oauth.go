package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sso-server/internal/auth"
	"sso-server/internal/auth/providers"
	"sso-server/internal/middleware"
	"sso-server/internal/shared/cookies"
	"sso-server/internal/shared/errors"
	"sso-server/internal/shared/response"
)

const (
	callbackTimeout = 30 * time.Second

	onboardingHeader = "onboarding"
	reloadHeader     = "reload"
)

type authService interface {
	LoginURL(providerKey string) (string, error)
	LogoutURL(providerKey, postLogoutRedirect string) (string, error)
	ResolveCallback(ctx context.Context, providerKey, code string) (*auth.SessionOutcome, error)
	FetchProfile(ctx context.Context, providerKey, accessToken string) (*providers.Identity, error)
	ProvisionUser(ctx context.Context, providerKey string, profile *providers.Identity, ip, userAgent string, hint *auth.OrgHint) (*auth.ProvisioningResult, error)
	DecodeOrgHint(raw string) (*auth.OrgHint, bool)
}

// OAuthHandler serves the /auth/{provider}/... endpoints.
type OAuthHandler struct {
	service     authService
	cookies     *cookies.Policy
	frontendURL string
	trustProxy  bool
}

func NewOAuthHandler(service authService, policy *cookies.Policy, frontendURL string, trustProxy bool) *OAuthHandler {
	return &OAuthHandler{
		service:     service,
		cookies:     policy,
		frontendURL: frontendURL,
		trustProxy:  trustProxy,
	}
}

// HandleLogin redirects the browser to the provider's authorization page.
func (h *OAuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	logger := slog.With("handler", "oauth_login", "provider", providerKey)

	authURL, err := h.service.LoginURL(providerKey)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Debug("Redirecting to identity provider")
	http.Redirect(w, r, authURL, http.StatusFound)
}

// HandleLink returns the authorization URL as plain text for SPAs that
// navigate on their own.
func (h *OAuthHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	logger := slog.With("handler", "oauth_link", "provider", providerKey)

	authURL, err := h.service.LoginURL(providerKey)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Text(w, http.StatusOK, authURL)
}

func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	code := r.URL.Query().Get("code")
	errorParam := r.URL.Query().Get("error")

	logger := slog.With(
		"handler", "oauth_callback",
		"provider", providerKey,
		"user_agent", r.UserAgent(),
		"ip", r.RemoteAddr,
		"has_code", code != "",
	)

	if errorParam != "" {
		logger.Warn("OAuth authorization denied",
			"oauth_error", errorParam,
			"error_description", r.URL.Query().Get("error_description"))
		response.Error(w, r, logger, errors.Unauthorized("authorization denied by identity provider: "+errorParam))
		return
	}

	if code == "" {
		response.Error(w, r, logger, errors.Validation("missing authorization code"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), callbackTimeout)
	defer cancel()

	outcome, err := h.service.ResolveCallback(ctx, providerKey, code)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if !outcome.NeedsProvisioning() {
		h.cookies.Set(w, cookies.AuthCookie, outcome.Credential)
		w.Header().Set(reloadHeader, "true")

		logger.Info("Existing user signed in")
		http.Redirect(w, r, h.frontendURL, http.StatusFound)
		return
	}

	var hint *auth.OrgHint
	if cookie, err := r.Cookie(cookies.OrgHintCookie); err == nil {
		hint, _ = h.service.DecodeOrgHint(cookie.Value)
	}

	profile, err := h.service.FetchProfile(ctx, providerKey, outcome.ProvisioningToken)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	result, err := h.service.ProvisionUser(ctx, providerKey, profile,
		middleware.ClientIP(r, h.trustProxy), r.UserAgent(), hint)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.cookies.Set(w, cookies.AuthCookie, result.Credential)
	if result.Organization != nil {
		h.cookies.Set(w, cookies.ShowOrgCookie, result.Organization.OrganizationID)
	}
	if hint != nil {
		h.cookies.Clear(w, cookies.OrgHintCookie)
	}
	w.Header().Set(onboardingHeader, "true")

	logger.Info("New user signed up",
		"joined_organization", result.Organization != nil)
	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

// HandleLogout drops the session cookie and sends the browser through the
// provider's end-session endpoint back to the frontend.
func (h *OAuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	logger := slog.With("handler", "oauth_logout", "provider", providerKey)

	logoutURL, err := h.service.LogoutURL(providerKey, h.frontendURL)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.cookies.Clear(w, cookies.AuthCookie)

	logger.Debug("Session cleared")
	http.Redirect(w, r, logoutURL, http.StatusFound)
}
