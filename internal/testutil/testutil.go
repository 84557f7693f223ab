// Package testutil holds request and token helpers shared by handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"freader/internal/httpx"
	"freader/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TestSecret    = "test-secret"
	TestAccountID = "3f1c7a52-0c1e-4a5e-9d0b-6f0a8e2b1c11"
	TestEmail     = "reader@example.com"
)

// NewRequest builds a request whose body is body encoded as JSON.
func NewRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		raw, _ = json.Marshal(body)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// WithUser attaches verified claims for accountID as AuthMiddleware would.
func WithUser(r *http.Request, accountID, email string) *http.Request {
	claims := &crypto.Claims{
		Sub:   accountID,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "test-jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	return r.WithContext(httpx.ContextWithClaims(r.Context(), claims))
}

// AuthedRequest is NewRequest plus WithUser for the default test account.
func AuthedRequest(method, path string, body any) *http.Request {
	return WithUser(NewRequest(method, path, body), TestAccountID, TestEmail)
}

// GenerateTestToken signs a one-hour token with TestSecret.
func GenerateTestToken(accountID, email string) string {
	token, _, _ := crypto.GenerateToken(TestSecret, accountID, email, time.Hour)
	return token
}

// Envelope is the decoded shape of every JSON response.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details []httpx.ErrorDetail `json:"details"`
	} `json:"error"`
}

// Decode reads the envelope of w and, when data is non-nil, unmarshals the
// data field into it.
func Decode(w *httptest.ResponseRecorder, data any) (Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		return env, err
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return env, err
		}
	}
	return env, nil
}
