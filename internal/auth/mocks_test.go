package auth

import (
	"context"
	"sync"

	"sso-server/internal/organization"
	"sso-server/internal/user"

	"github.com/google/uuid"
)

var _ userFinder = &userFinderMock{}

type userFinderMock struct {
	FindByProviderIdentityFunc func(ctx context.Context, provider user.Provider, providerID string) (*user.User, error)

	calls struct {
		FindByProviderIdentity []struct {
			Ctx        context.Context
			Provider   user.Provider
			ProviderID string
		}
	}
	lockFindByProviderIdentity sync.RWMutex
}

func (mock *userFinderMock) FindByProviderIdentity(ctx context.Context, provider user.Provider, providerID string) (*user.User, error) {
	if mock.FindByProviderIdentityFunc == nil {
		panic("userFinderMock.FindByProviderIdentityFunc: method is nil but userFinder.FindByProviderIdentity was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Provider   user.Provider
		ProviderID string
	}{Ctx: ctx, Provider: provider, ProviderID: providerID}
	mock.lockFindByProviderIdentity.Lock()
	mock.calls.FindByProviderIdentity = append(mock.calls.FindByProviderIdentity, callInfo)
	mock.lockFindByProviderIdentity.Unlock()
	return mock.FindByProviderIdentityFunc(ctx, provider, providerID)
}

func (mock *userFinderMock) FindByProviderIdentityCalls() []struct {
	Ctx        context.Context
	Provider   user.Provider
	ProviderID string
} {
	mock.lockFindByProviderIdentity.RLock()
	calls := mock.calls.FindByProviderIdentity
	mock.lockFindByProviderIdentity.RUnlock()
	return calls
}

var _ accountProvisioner = &accountProvisionerMock{}

type accountProvisionerMock struct {
	CreateOrgAndUserFunc func(ctx context.Context, account organization.NewAccount, ip string, userAgent string) (*organization.Created, error)
	AddUserToOrgFunc     func(ctx context.Context, userID uuid.UUID, invitationID string, organizationID string, role organization.Role) (*organization.Link, error)

	calls struct {
		CreateOrgAndUser []struct {
			Ctx       context.Context
			Account   organization.NewAccount
			IP        string
			UserAgent string
		}
		AddUserToOrg []struct {
			Ctx            context.Context
			UserID         uuid.UUID
			InvitationID   string
			OrganizationID string
			Role           organization.Role
		}
	}
	lockCreateOrgAndUser sync.RWMutex
	lockAddUserToOrg     sync.RWMutex
}

func (mock *accountProvisionerMock) CreateOrgAndUser(ctx context.Context, account organization.NewAccount, ip string, userAgent string) (*organization.Created, error) {
	if mock.CreateOrgAndUserFunc == nil {
		panic("accountProvisionerMock.CreateOrgAndUserFunc: method is nil but accountProvisioner.CreateOrgAndUser was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Account   organization.NewAccount
		IP        string
		UserAgent string
	}{Ctx: ctx, Account: account, IP: ip, UserAgent: userAgent}
	mock.lockCreateOrgAndUser.Lock()
	mock.calls.CreateOrgAndUser = append(mock.calls.CreateOrgAndUser, callInfo)
	mock.lockCreateOrgAndUser.Unlock()
	return mock.CreateOrgAndUserFunc(ctx, account, ip, userAgent)
}

func (mock *accountProvisionerMock) CreateOrgAndUserCalls() []struct {
	Ctx       context.Context
	Account   organization.NewAccount
	IP        string
	UserAgent string
} {
	mock.lockCreateOrgAndUser.RLock()
	calls := mock.calls.CreateOrgAndUser
	mock.lockCreateOrgAndUser.RUnlock()
	return calls
}

func (mock *accountProvisionerMock) AddUserToOrg(ctx context.Context, userID uuid.UUID, invitationID string, organizationID string, role organization.Role) (*organization.Link, error) {
	if mock.AddUserToOrgFunc == nil {
		panic("accountProvisionerMock.AddUserToOrgFunc: method is nil but accountProvisioner.AddUserToOrg was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		UserID         uuid.UUID
		InvitationID   string
		OrganizationID string
		Role           organization.Role
	}{Ctx: ctx, UserID: userID, InvitationID: invitationID, OrganizationID: organizationID, Role: role}
	mock.lockAddUserToOrg.Lock()
	mock.calls.AddUserToOrg = append(mock.calls.AddUserToOrg, callInfo)
	mock.lockAddUserToOrg.Unlock()
	return mock.AddUserToOrgFunc(ctx, userID, invitationID, organizationID, role)
}

func (mock *accountProvisionerMock) AddUserToOrgCalls() []struct {
	Ctx            context.Context
	UserID         uuid.UUID
	InvitationID   string
	OrganizationID string
	Role           organization.Role
} {
	mock.lockAddUserToOrg.RLock()
	calls := mock.calls.AddUserToOrg
	mock.lockAddUserToOrg.RUnlock()
	return calls
}

var _ sessionSigner = &sessionSignerMock{}

type sessionSignerMock struct {
	SignFunc func(u *user.User) (string, error)

	calls struct {
		Sign []struct {
			U *user.User
		}
	}
	lockSign sync.RWMutex
}

func (mock *sessionSignerMock) Sign(u *user.User) (string, error) {
	if mock.SignFunc == nil {
		panic("sessionSignerMock.SignFunc: method is nil but sessionSigner.Sign was just called")
	}
	callInfo := struct {
		U *user.User
	}{U: u}
	mock.lockSign.Lock()
	mock.calls.Sign = append(mock.calls.Sign, callInfo)
	mock.lockSign.Unlock()
	return mock.SignFunc(u)
}

func (mock *sessionSignerMock) SignCalls() []struct {
	U *user.User
} {
	mock.lockSign.RLock()
	calls := mock.calls.Sign
	mock.lockSign.RUnlock()
	return calls
}
