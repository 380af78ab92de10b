package providers

import "context"

const (
	MockName = "mock"

	MockCode        = "MOCK_CODE"
	MockAccessToken = "MOCK_ACCESS_TOKEN"
	MockEmail       = "demo@example.com"
	MockExternalID  = "mock-user-id"
)

// MockProvider returns canned values and performs no I/O. Its authorization
// URL points straight back at the local callback.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return MockName
}

func (p *MockProvider) AuthorizationURL() string {
	return "/auth/" + OneSSOName + "/callback?code=" + MockCode
}

func (p *MockProvider) ExchangeCode(_ context.Context, _ string) (string, error) {
	return MockAccessToken, nil
}

func (p *MockProvider) FetchProfile(_ context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, nil
	}
	return &Identity{Email: MockEmail, ExternalID: MockExternalID}, nil
}

func (p *MockProvider) LogoutURL(postLogoutRedirect string) string {
	return postLogoutRedirect
}
