// Package testutil wires tests to the local Firebase emulators. Tests that
// need an emulator skip when it is not listening.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
)

const (
	AuthEmulatorHost      = "127.0.0.1:7110"
	FirestoreEmulatorHost = "127.0.0.1:7130"
	ProjectID             = "demo-test-project"
	fakeAPIKey            = "fake-api-key" //nolint:gosec // emulator only
)

var dialTimeout = 100 * time.Millisecond

func listening(hosts ...string) bool {
	for _, host := range hosts {
		conn, err := net.DialTimeout("tcp", host, dialTimeout)
		if err != nil {
			return false
		}
		_ = conn.Close()
	}
	return true
}

// SkipIfEmulatorUnavailable skips unless both Auth and Firestore emulators answer.
func SkipIfEmulatorUnavailable(t *testing.T) {
	t.Helper()
	if !listening(AuthEmulatorHost, FirestoreEmulatorHost) {
		t.Skip("Firebase emulators not available")
	}
}

// SetupEmulator points the Firebase SDKs at the emulators for this test.
func SetupEmulator(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", AuthEmulatorHost)
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreEmulatorHost)
}

// FirestoreClient returns an emulator client over an emptied database,
// closed when the test ends.
func FirestoreClient(t *testing.T) *firestore.Client {
	t.Helper()
	if !listening(FirestoreEmulatorHost) {
		t.Skip("Firestore emulator not available")
	}
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreEmulatorHost)
	ClearFirestore(t)

	client, err := firestore.NewClient(context.Background(), ProjectID)
	if err != nil {
		t.Fatalf("firestore client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// ClearFirestore deletes every document in the emulator project.
func ClearFirestore(t *testing.T) {
	t.Helper()
	call(t, http.MethodDelete, FirestoreEmulatorHost,
		"/emulator/v1/projects/"+ProjectID+"/databases/(default)/documents", nil, nil)
}

// ClearAccounts deletes every Auth emulator user.
func ClearAccounts(t *testing.T) {
	t.Helper()
	call(t, http.MethodDelete, AuthEmulatorHost, "/emulator/v1/projects/"+ProjectID+"/accounts", nil, nil)
}

// SignUpResponse is the part of the Auth emulator sign-up reply tests read.
type SignUpResponse struct {
	IDToken string `json:"idToken"`
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

// CreateTestUser registers an email/password user and returns its ID token.
func CreateTestUser(t *testing.T, email, password string) *SignUpResponse {
	t.Helper()
	var out SignUpResponse
	call(t, http.MethodPost, AuthEmulatorHost,
		"/identitytoolkit.googleapis.com/v1/accounts:signUp?key="+url.QueryEscape(fakeAPIKey),
		map[string]any{"email": email, "password": password, "returnSecureToken": true}, &out)
	return &out
}

// call sends a JSON request to an emulator and decodes the reply into out
// when out is non-nil.
func call(t *testing.T, method, host, path string, in, out any) {
	t.Helper()
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req, err := http.NewRequestWithContext(context.Background(), method, "http://"+host+path, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		t.Fatalf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
}
