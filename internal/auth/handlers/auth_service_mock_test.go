package handlers

import (
	"context"
	"sync"

	"sso-server/internal/auth"
	"sso-server/internal/auth/providers"
)

var _ authService = &authServiceMock{}

type authServiceMock struct {
	LoginURLFunc        func(providerKey string) (string, error)
	LogoutURLFunc       func(providerKey string, postLogoutRedirect string) (string, error)
	ResolveCallbackFunc func(ctx context.Context, providerKey string, code string) (*auth.SessionOutcome, error)
	FetchProfileFunc    func(ctx context.Context, providerKey string, accessToken string) (*providers.Identity, error)
	ProvisionUserFunc   func(ctx context.Context, providerKey string, profile *providers.Identity, ip string, userAgent string, hint *auth.OrgHint) (*auth.ProvisioningResult, error)
	DecodeOrgHintFunc   func(raw string) (*auth.OrgHint, bool)

	calls struct {
		ResolveCallback []struct {
			Ctx         context.Context
			ProviderKey string
			Code        string
		}
		FetchProfile []struct {
			Ctx         context.Context
			ProviderKey string
			AccessToken string
		}
		ProvisionUser []struct {
			Ctx         context.Context
			ProviderKey string
			Profile     *providers.Identity
			IP          string
			UserAgent   string
			Hint        *auth.OrgHint
		}
		DecodeOrgHint []struct {
			Raw string
		}
	}
	lockResolveCallback sync.RWMutex
	lockFetchProfile    sync.RWMutex
	lockProvisionUser   sync.RWMutex
	lockDecodeOrgHint   sync.RWMutex
}

func (mock *authServiceMock) LoginURL(providerKey string) (string, error) {
	if mock.LoginURLFunc == nil {
		panic("authServiceMock.LoginURLFunc: method is nil but authService.LoginURL was just called")
	}
	return mock.LoginURLFunc(providerKey)
}

func (mock *authServiceMock) LogoutURL(providerKey string, postLogoutRedirect string) (string, error) {
	if mock.LogoutURLFunc == nil {
		panic("authServiceMock.LogoutURLFunc: method is nil but authService.LogoutURL was just called")
	}
	return mock.LogoutURLFunc(providerKey, postLogoutRedirect)
}

func (mock *authServiceMock) ResolveCallback(ctx context.Context, providerKey string, code string) (*auth.SessionOutcome, error) {
	if mock.ResolveCallbackFunc == nil {
		panic("authServiceMock.ResolveCallbackFunc: method is nil but authService.ResolveCallback was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ProviderKey string
		Code        string
	}{Ctx: ctx, ProviderKey: providerKey, Code: code}
	mock.lockResolveCallback.Lock()
	mock.calls.ResolveCallback = append(mock.calls.ResolveCallback, callInfo)
	mock.lockResolveCallback.Unlock()
	return mock.ResolveCallbackFunc(ctx, providerKey, code)
}

func (mock *authServiceMock) ResolveCallbackCalls() []struct {
	Ctx         context.Context
	ProviderKey string
	Code        string
} {
	mock.lockResolveCallback.RLock()
	calls := mock.calls.ResolveCallback
	mock.lockResolveCallback.RUnlock()
	return calls
}

func (mock *authServiceMock) FetchProfile(ctx context.Context, providerKey string, accessToken string) (*providers.Identity, error) {
	if mock.FetchProfileFunc == nil {
		panic("authServiceMock.FetchProfileFunc: method is nil but authService.FetchProfile was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ProviderKey string
		AccessToken string
	}{Ctx: ctx, ProviderKey: providerKey, AccessToken: accessToken}
	mock.lockFetchProfile.Lock()
	mock.calls.FetchProfile = append(mock.calls.FetchProfile, callInfo)
	mock.lockFetchProfile.Unlock()
	return mock.FetchProfileFunc(ctx, providerKey, accessToken)
}

func (mock *authServiceMock) FetchProfileCalls() []struct {
	Ctx         context.Context
	ProviderKey string
	AccessToken string
} {
	mock.lockFetchProfile.RLock()
	calls := mock.calls.FetchProfile
	mock.lockFetchProfile.RUnlock()
	return calls
}

func (mock *authServiceMock) ProvisionUser(ctx context.Context, providerKey string, profile *providers.Identity, ip string, userAgent string, hint *auth.OrgHint) (*auth.ProvisioningResult, error) {
	if mock.ProvisionUserFunc == nil {
		panic("authServiceMock.ProvisionUserFunc: method is nil but authService.ProvisionUser was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ProviderKey string
		Profile     *providers.Identity
		IP          string
		UserAgent   string
		Hint        *auth.OrgHint
	}{Ctx: ctx, ProviderKey: providerKey, Profile: profile, IP: ip, UserAgent: userAgent, Hint: hint}
	mock.lockProvisionUser.Lock()
	mock.calls.ProvisionUser = append(mock.calls.ProvisionUser, callInfo)
	mock.lockProvisionUser.Unlock()
	return mock.ProvisionUserFunc(ctx, providerKey, profile, ip, userAgent, hint)
}

func (mock *authServiceMock) ProvisionUserCalls() []struct {
	Ctx         context.Context
	ProviderKey string
	Profile     *providers.Identity
	IP          string
	UserAgent   string
	Hint        *auth.OrgHint
} {
	mock.lockProvisionUser.RLock()
	calls := mock.calls.ProvisionUser
	mock.lockProvisionUser.RUnlock()
	return calls
}

func (mock *authServiceMock) DecodeOrgHint(raw string) (*auth.OrgHint, bool) {
	if mock.DecodeOrgHintFunc == nil {
		panic("authServiceMock.DecodeOrgHintFunc: method is nil but authService.DecodeOrgHint was just called")
	}
	callInfo := struct {
		Raw string
	}{Raw: raw}
	mock.lockDecodeOrgHint.Lock()
	mock.calls.DecodeOrgHint = append(mock.calls.DecodeOrgHint, callInfo)
	mock.lockDecodeOrgHint.Unlock()
	return mock.DecodeOrgHintFunc(raw)
}

func (mock *authServiceMock) DecodeOrgHintCalls() []struct {
	Raw string
} {
	mock.lockDecodeOrgHint.RLock()
	calls := mock.calls.DecodeOrgHint
	mock.lockDecodeOrgHint.RUnlock()
	return calls
}
