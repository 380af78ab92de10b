package auth

import (
	"context"
	"sync"

	"sso-server/internal/newsletter"
)

var _ newsletter.Registrar = &registrarMock{}

type registrarMock struct {
	RegisterFunc func(ctx context.Context, email string) error

	calls struct {
		Register []struct {
			Ctx   context.Context
			Email string
		}
	}
	lockRegister sync.RWMutex
}

func (mock *registrarMock) Register(ctx context.Context, email string) error {
	if mock.RegisterFunc == nil {
		panic("registrarMock.RegisterFunc: method is nil but Registrar.Register was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, email)
}

func (mock *registrarMock) RegisterCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockRegister.RLock()
	calls := mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}
