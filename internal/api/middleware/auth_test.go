package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Umar7799/user-managment/internal/api/middleware"
	"github.com/Umar7799/user-managment/internal/auth"
	"github.com/Umar7799/user-managment/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo serves canned users for guard tests.
type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := tokens.Issue(userID, "a@x.com")
	require.NoError(t, err)

	expiredTokens := auth.NewTokenService("test-secret", -time.Minute)
	expiredToken, err := expiredTokens.Issue(userID, "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		wantIdentity   bool
	}{
		{
			name:           "valid bearer token",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
			wantIdentity:   true,
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic " + token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			header:         "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			header:         "Bearer notatoken",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity *middleware.Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if identity, ok := middleware.GetIdentity(r.Context()); ok {
					gotIdentity = &identity
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			middleware.Authenticate(tokens)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.wantIdentity {
				require.NotNil(t, gotIdentity)
				assert.Equal(t, userID, gotIdentity.UserID)
				assert.Equal(t, "a@x.com", gotIdentity.Email)
			} else {
				assert.Nil(t, gotIdentity)
			}
		})
	}
}

func TestRequireActive(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	activeID := uuid.New()
	blockedID := uuid.New()
	deletedID := uuid.New()

	repo := &fakeUserRepo{users: map[uuid.UUID]*domain.User{
		activeID:  {ID: activeID, Status: domain.StatusActive},
		blockedID: {ID: blockedID, Status: domain.StatusBlocked},
	}}

	tests := []struct {
		name           string
		userID         uuid.UUID
		expectedStatus int
	}{
		{
			name:           "active actor allowed",
			userID:         activeID,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "blocked actor rejected",
			userID:         blockedID,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "deleted actor rejected",
			userID:         deletedID,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tokens.Issue(tt.userID, "actor@x.com")
			require.NoError(t, err)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			guard := middleware.Authenticate(tokens)(middleware.RequireActive(repo)(next))
			guard.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
