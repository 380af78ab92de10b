package auth

import (
	"context"
	"sync"

	"sso-server/internal/auth/providers"
)

var _ providers.Strategy = &strategyMock{}

type strategyMock struct {
	NameFunc             func() string
	AuthorizationURLFunc func() string
	ExchangeCodeFunc     func(ctx context.Context, code string) (string, error)
	FetchProfileFunc     func(ctx context.Context, accessToken string) (*providers.Identity, error)
	LogoutURLFunc        func(postLogoutRedirect string) string

	calls struct {
		ExchangeCode []struct {
			Ctx  context.Context
			Code string
		}
		FetchProfile []struct {
			Ctx         context.Context
			AccessToken string
		}
	}
	lockExchangeCode sync.RWMutex
	lockFetchProfile sync.RWMutex
}

func (mock *strategyMock) Name() string {
	if mock.NameFunc == nil {
		panic("strategyMock.NameFunc: method is nil but Strategy.Name was just called")
	}
	return mock.NameFunc()
}

func (mock *strategyMock) AuthorizationURL() string {
	if mock.AuthorizationURLFunc == nil {
		panic("strategyMock.AuthorizationURLFunc: method is nil but Strategy.AuthorizationURL was just called")
	}
	return mock.AuthorizationURLFunc()
}

func (mock *strategyMock) ExchangeCode(ctx context.Context, code string) (string, error) {
	if mock.ExchangeCodeFunc == nil {
		panic("strategyMock.ExchangeCodeFunc: method is nil but Strategy.ExchangeCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockExchangeCode.Lock()
	mock.calls.ExchangeCode = append(mock.calls.ExchangeCode, callInfo)
	mock.lockExchangeCode.Unlock()
	return mock.ExchangeCodeFunc(ctx, code)
}

func (mock *strategyMock) ExchangeCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockExchangeCode.RLock()
	calls := mock.calls.ExchangeCode
	mock.lockExchangeCode.RUnlock()
	return calls
}

func (mock *strategyMock) FetchProfile(ctx context.Context, accessToken string) (*providers.Identity, error) {
	if mock.FetchProfileFunc == nil {
		panic("strategyMock.FetchProfileFunc: method is nil but Strategy.FetchProfile was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		AccessToken string
	}{Ctx: ctx, AccessToken: accessToken}
	mock.lockFetchProfile.Lock()
	mock.calls.FetchProfile = append(mock.calls.FetchProfile, callInfo)
	mock.lockFetchProfile.Unlock()
	return mock.FetchProfileFunc(ctx, accessToken)
}

func (mock *strategyMock) FetchProfileCalls() []struct {
	Ctx         context.Context
	AccessToken string
} {
	mock.lockFetchProfile.RLock()
	calls := mock.calls.FetchProfile
	mock.lockFetchProfile.RUnlock()
	return calls
}

func (mock *strategyMock) LogoutURL(postLogoutRedirect string) string {
	if mock.LogoutURLFunc == nil {
		panic("strategyMock.LogoutURLFunc: method is nil but Strategy.LogoutURL was just called")
	}
	return mock.LogoutURLFunc(postLogoutRedirect)
}
