package providers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sso-server/internal/shared/config"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const (
	OneSSOName = "onesso"

	defaultHTTPTimeout = 10 * time.Second
)

var oneSSOScopes = []string{oidc.ScopeOpenID, "profile", "email"}

// OneSSOProvider talks to a Keycloak-style realm:
// {base}/realms/{realm}/protocol/openid-connect/{auth,token,userinfo,logout}.
type OneSSOProvider struct {
	oauth      *oauth2.Config
	oidc       *oidc.Provider
	logoutURL  string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*OneSSOProvider)

// WithHTTPClient replaces the client used for the token and userinfo calls.
func WithHTTPClient(client *http.Client) Option {
	return func(p *OneSSOProvider) {
		p.httpClient = client
	}
}

// NewOneSSOProvider validates cfg and builds the provider without any network
// I/O. It returns a *ConfigurationError naming the first missing setting.
func NewOneSSOProvider(cfg config.ProviderConfig, opts ...Option) (*OneSSOProvider, error) {
	required := []struct {
		field string
		value string
	}{
		{"ONESSO_BASE_URL", cfg.BaseURL},
		{"ONESSO_REALM", cfg.Realm},
		{"ONESSO_CLIENT_ID", cfg.ClientID},
		{"ONESSO_CLIENT_SECRET", cfg.ClientSecret},
		{"ONESSO_REDIRECT_URI", cfg.RedirectURI},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, &ConfigurationError{Field: r.field}
		}
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	base := strings.TrimRight(cfg.BaseURL, "/") +
		"/realms/" + url.PathEscape(cfg.Realm) + "/protocol/openid-connect"

	p := &OneSSOProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       oneSSOScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/auth",
				TokenURL:  base + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		logoutURL:  base + "/logout",
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	providerConfig := &oidc.ProviderConfig{
		IssuerURL:   strings.TrimRight(cfg.BaseURL, "/") + "/realms/" + url.PathEscape(cfg.Realm),
		AuthURL:     p.oauth.Endpoint.AuthURL,
		TokenURL:    p.oauth.Endpoint.TokenURL,
		UserInfoURL: base + "/userinfo",
	}
	p.oidc = providerConfig.NewProvider(oidc.ClientContext(context.Background(), p.httpClient))

	slog.With("component", "onesso_provider", "operation", "init").
		Debug("OneSSO provider configured",
			"auth_url", p.oauth.Endpoint.AuthURL,
			"timeout", timeout)

	return p, nil
}

func (p *OneSSOProvider) Name() string {
	return OneSSOName
}

// AuthorizationURL has no state parameter, so it is the same on every call.
func (p *OneSSOProvider) AuthorizationURL() string {
	return p.oauth.AuthCodeURL("")
}

func (p *OneSSOProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	logger := slog.With("provider", OneSSOName, "operation", "exchange_code")
	logger.Debug("Exchanging authorization code for access token")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			exchangeErr := &TokenExchangeError{Body: string(retrieveErr.Body), Err: err}
			if retrieveErr.Response != nil {
				exchangeErr.StatusCode = retrieveErr.Response.StatusCode
			}
			logger.Warn("Token endpoint rejected authorization code",
				"status_code", exchangeErr.StatusCode,
				"body", exchangeErr.Body)
			return "", exchangeErr
		}

		logger.Warn("Token endpoint request failed", "error", err)
		return "", &TokenExchangeError{Err: err}
	}

	logger.Debug("Successfully exchanged code for token")
	return token.AccessToken, nil
}

func (p *OneSSOProvider) FetchProfile(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, nil
	}

	logger := slog.With("provider", OneSSOName, "operation", "fetch_profile")
	logger.Debug("Requesting user info")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	ctx = oidc.ClientContext(ctx, p.httpClient)

	info, err := p.oidc.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	if err != nil {
		logger.Warn("User info request failed", "error", err)
		return nil, &ProfileFetchError{Reason: "userinfo request failed", Err: err}
	}

	if info.Subject == "" {
		return nil, &ProfileFetchError{Reason: "userinfo response missing sub"}
	}
	if info.Email == "" {
		return nil, &ProfileFetchError{Reason: "userinfo response missing email"}
	}

	logger.Debug("Successfully retrieved user info", "external_id", info.Subject)

	return &Identity{Email: info.Email, ExternalID: info.Subject}, nil
}

func (p *OneSSOProvider) LogoutURL(postLogoutRedirect string) string {
	if postLogoutRedirect == "" {
		return p.logoutURL
	}
	return p.logoutURL + "?" + url.Values{"redirect_uri": {postLogoutRedirect}}.Encode()
}
