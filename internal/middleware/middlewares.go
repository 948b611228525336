package middleware

import (
	"github.com/betimvpp/NlwSpacetimeServer/internal/lib/identity"
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
)

// Middlewares groups every middleware component so the router receives a
// single value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
}

// NewMiddlewares builds the middleware set. verifier is nil when Clerk
// verifies bearer tokens.
func NewMiddlewares(s *server.Server, verifier identity.Verifier) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, verifier),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
