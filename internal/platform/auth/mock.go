package auth

import "context"

// MockVerifier is a Verifier for tests. Tokens, when set, maps accepted
// tokens to users and rejects everything else with ErrInvalidToken;
// otherwise every token yields User. A non-nil Error always wins.
type MockVerifier struct {
	User   *User
	Tokens map[string]*User
	Error  error
}

func (m *MockVerifier) Verify(_ context.Context, token string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Tokens != nil {
		u, ok := m.Tokens[token]
		if !ok {
			return nil, ErrInvalidToken
		}
		return u, nil
	}
	return m.User, nil
}

// TestUser is the identity shared by handler tests.
func TestUser() *User {
	return &User{UID: "test-user-123", Email: "test@example.com", EmailVerified: true, Name: "Test User"}
}

var _ Verifier = (*MockVerifier)(nil)
