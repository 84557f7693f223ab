package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"freader/internal/platform/crypto"
	"freader/internal/testutil"
	"freader/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(a *mockAccounts, p *mockProfiles)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "invalid email",
			body:       map[string]string{"email": "nope", "password": "Str0ng!pass"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "weak password",
			body:       map[string]string{"email": "jane@example.com", "password": "password"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name: "duplicate",
			body: map[string]string{"email": "jane@example.com", "password": "Str0ng!pass"},
			setup: func(a *mockAccounts, _ *mockProfiles) {
				a.On("Create", mock.Anything, mock.Anything).Return(ErrAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
		},
		{
			name: "created",
			body: map[string]string{"email": "jane@example.com", "password": "Str0ng!pass"},
			setup: func(a *mockAccounts, p *mockProfiles) {
				a.On("Create", mock.Anything, mock.Anything).Return(nil)
				p.On("CreateForAccount", mock.Anything, "acc-1", "jane@example.com").Return(user.User{}, nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts, _, profiles := newTestService()
			if tt.setup != nil {
				tt.setup(accounts, profiles)
			}
			handler := NewHTTPHandler(svc, zap.NewNop())

			w := httptest.NewRecorder()
			handler.Register(w, testutil.NewRequest(http.MethodPost, "/v1/auth/register", tt.body))

			require.Equal(t, tt.wantStatus, w.Code)
			var sess Session
			env, err := testutil.Decode(w, &sess)
			require.NoError(t, err)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, env.Error.Code)
				return
			}
			assert.Equal(t, "acc-1", sess.UserID)
			assert.NotEmpty(t, sess.AccessToken)
		})
	}
}

func TestHTTPHandler_Login(t *testing.T) {
	hash, err := crypto.HashPassword("Str0ng!pass")
	require.NoError(t, err)

	svc, accounts, _, _ := newTestService()
	accounts.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(Account{ID: "acc-1", Email: "jane@example.com", PasswordHash: hash}, nil)
	handler := NewHTTPHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	handler.Login(w, testutil.NewRequest(http.MethodPost, "/v1/auth/login",
		map[string]string{"email": "jane@example.com", "password": "Str0ng!pass"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.Login(w, testutil.NewRequest(http.MethodPost, "/v1/auth/login",
		map[string]string{"email": "jane@example.com", "password": "wrong"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHTTPHandler_Logout(t *testing.T) {
	svc, _, blacklist, _ := newTestService()
	blacklist.On("Add", mock.Anything, "test-jti", testutil.TestAccountID, mock.Anything).Return(nil)
	handler := NewHTTPHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	handler.Logout(w, testutil.AuthedRequest(http.MethodPost, "/v1/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	blacklist.AssertExpectations(t)

	w = httptest.NewRecorder()
	handler.Logout(w, testutil.NewRequest(http.MethodPost, "/v1/auth/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
