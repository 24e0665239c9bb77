package middleware

import (
	"net/http"
	"strings"

	"flix/internal/data/repository"
	"flix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "flix_session"

// extractSignedToken pulls the signed token from the session cookie or the
// Authorization header; the cookie wins when both are present
func extractSignedToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// resolveSession verifies the token signature and loads the live session
// plus the owner's role. Returns ("", nil, nil, nil) when the request
// carries no usable session.
func resolveSession(
	r *http.Request,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	secret string,
	logger *zap.Logger,
) (token string, userID uuid.UUID, role string, err error) {
	signed := extractSignedToken(r)
	if signed == "" {
		return "", uuid.Nil, "", nil
	}

	// Reject tampered cookies before touching the store
	bare, ok := utils.VerifySessionToken(signed, secret)
	if !ok {
		logger.Warn("Session token failed signature check", zap.String("path", r.URL.Path))
		return "", uuid.Nil, "", nil
	}

	session, lookupErr := sessionRepo.FindValidSession(r.Context(), bare)
	if lookupErr != nil {
		return "", uuid.Nil, "", lookupErr
	}
	if session == nil {
		return "", uuid.Nil, "", nil
	}

	user, lookupErr := userRepo.FindByID(r.Context(), session.UserID)
	if lookupErr != nil {
		return "", uuid.Nil, "", lookupErr
	}
	if user == nil {
		// Session outlived its user
		return "", uuid.Nil, "", nil
	}

	return bare, session.UserID, string(user.Role), nil
}

// AuthSession requires a valid session and puts the caller's identity into
// the request context
func AuthSession(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	secret string,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, userID, role, err := resolveSession(r, sessionRepo, userRepo, secret, logger)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if token == "" {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, role)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the caller's identity when a valid session is
// present and lets anonymous requests through untouched
func OptionalAuth(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	secret string,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, userID, role, err := resolveSession(r, sessionRepo, userRepo, secret, logger)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if token != "" {
				ctx := utils.SetUserContext(r.Context(), userID, role)
				ctx = utils.SetTokenContext(ctx, token)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole guards a route on the role already resolved by AuthSession
func RequireRole(role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerRole, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if callerRole != role {
				userID, _ := utils.GetUserIDFromContext(r.Context())
				logger.Warn("Insufficient role",
					zap.String("user_id", userID.String()),
					zap.String("required_role", role),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
