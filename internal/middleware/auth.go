package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/labstack/echo/v4"

	"github.com/betimvpp/NlwSpacetimeServer/internal/errs"
	"github.com/betimvpp/NlwSpacetimeServer/internal/lib/identity"
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
)

// AuthMiddleware rejects requests without a valid bearer token and records
// the caller's subject under UserIDKey.
type AuthMiddleware struct {
	server   *server.Server
	verifier identity.Verifier
}

// NewAuthMiddleware constructs an AuthMiddleware. A nil verifier means Clerk
// session tokens are expected.
func NewAuthMiddleware(s *server.Server, verifier identity.Verifier) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		verifier: verifier,
	}
}

// RequireAuth is the route middleware guarding every /memories endpoint.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	if auth.verifier != nil {
		return auth.requireBearer(next)
	}
	return auth.requireClerk(next)
}

// requireBearer verifies the Authorization header with the configured
// verifier.
func (auth *AuthMiddleware) requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c)

		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			logger.Warn().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("missing bearer token")
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		claims, err := auth.verifier.Verify(c.Request().Context(), token)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("bearer token rejected")
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		auth.authenticated(c, claims.Subject, start)
		return next(c)
	}
}

// requireClerk wraps Clerk's net/http middleware, which verifies the session
// token and stores its claims in the request context.
func (auth *AuthMiddleware) requireClerk(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()

				w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				w.WriteHeader(http.StatusUnauthorized)

				if err := json.NewEncoder(w).Encode(errs.NewUnauthorizedError("Unauthorized", false)); err != nil {
					auth.server.Logger.Error().
						Err(err).
						Str("function", "RequireAuth").
						Dur("duration", time.Since(start)).
						Msg("failed to write JSON response")
					return
				}

				auth.server.Logger.Warn().
					Str("function", "RequireAuth").
					Str("path", r.URL.Path).
					Dur("duration", time.Since(start)).
					Msg("clerk session token rejected")
			}))))(
		func(c echo.Context) error {
			start := time.Now()

			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				GetLogger(c).Error().
					Str("function", "RequireAuth").
					Dur("duration", time.Since(start)).
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized", false)
			}

			auth.authenticated(c, claims.Subject, start)
			return next(c)
		})
}

func (auth *AuthMiddleware) authenticated(c echo.Context, subject string, start time.Time) {
	c.Set(UserIDKey, subject)
	attachUser(c, subject)

	GetLogger(c).Debug().
		Str("function", "RequireAuth").
		Dur("duration", time.Since(start)).
		Msg("user authenticated successfully")
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
