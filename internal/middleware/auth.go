package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/neondara/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithUser returns a context carrying the authenticated identity.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, EmailKey, email)
}

// authenticate validates a Bearer Authorization header.
func authenticate(jwtManager *auth.JWTManager, header string) (*auth.Claims, error) {
	if header == "" {
		return nil, auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtManager.Validate(strings.TrimSpace(token))
}

// RequireAuth returns an interceptor that rejects calls without a valid
// token and adds the user ID and email to the context. Procedures listed
// in public skip the check.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]struct{}, len(public))
	for _, p := range public {
		skip[p] = struct{}{}
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if _, ok := skip[req.Spec().Procedure]; ok {
				return next(ctx, req)
			}

			claims, err := authenticate(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithUser(ctx, claims.UserID, claims.Email), req)
		}
	}
}

// RequireAuthHTTP is the plain HTTP counterpart of RequireAuth, used by
// the download endpoints. Browsers cannot set headers on a plain link, so
// a token query parameter is accepted as well.
func RequireAuthHTTP(jwtManager *auth.JWTManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			if token := r.URL.Query().Get("token"); token != "" {
				header = "Bearer " + token
			}
		}

		claims, err := authenticate(jwtManager, header)
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="neondara"`)
			}
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserID, claims.Email)))
	})
}
