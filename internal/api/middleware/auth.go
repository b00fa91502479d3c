package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Umar7799/user-managment/internal/auth"
	"github.com/Umar7799/user-managment/internal/domain"
	"github.com/Umar7799/user-managment/internal/repository"
	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller extracted from a session token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Authenticate answers "who are you": it extracts and verifies the bearer
// token and stores the caller's identity in the request context.
func Authenticate(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "Invalid authorization header.")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, Identity{
				UserID: userID,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActive answers "are you currently allowed to act": it looks up the
// caller's current status so a block takes effect on the very next request,
// even though the token itself stays structurally valid until expiry.
func RequireActive(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			user, err := users.GetByID(r.Context(), identity.UserID)
			if err != nil {
				// Deleted after token issuance: the session is no longer valid
				if errors.Is(err, domain.ErrUserNotFound) {
					writeError(w, http.StatusUnauthorized, "Account no longer exists.")
					return
				}
				writeError(w, http.StatusInternalServerError, "Could not verify account status.")
				return
			}

			if user.Blocked() {
				writeError(w, http.StatusForbidden, "User is blocked.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
