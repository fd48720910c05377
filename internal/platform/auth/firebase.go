package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseVerifier checks Firebase ID tokens, including revocation.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify implements Verifier.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*User, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, classifyFirebaseError(err)
	}
	return userFromClaims(token.UID, token.Claims), nil
}

func classifyFirebaseError(err error) error {
	switch {
	case fbauth.IsCertificateFetchFailed(err):
		return ErrCertificateFetch
	case fbauth.IsIDTokenExpired(err):
		return ErrTokenExpired
	case fbauth.IsIDTokenRevoked(err):
		return ErrTokenRevoked
	case fbauth.IsUserDisabled(err):
		return ErrUserDisabled
	default:
		return ErrInvalidToken
	}
}

// userFromClaims maps the standard ID token claims. Missing or mistyped
// claims become zero values.
func userFromClaims(uid string, claims map[string]any) *User {
	email, _ := claims["email"].(string)
	verified, _ := claims["email_verified"].(bool)
	name, _ := claims["name"].(string)
	return &User{
		UID:           uid,
		Email:         email,
		EmailVerified: verified,
		Name:          name,
	}
}

var _ Verifier = (*FirebaseVerifier)(nil)
