package service

import (
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/betimvpp/NlwSpacetimeServer/internal/config"
	"github.com/betimvpp/NlwSpacetimeServer/internal/lib/identity"
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
)

// AuthService configures bearer verification for the selected provider.
//
// With the clerk provider the Clerk SDK key is installed globally and the
// auth middleware verifies session tokens itself. With the jwt provider an
// HMACAuthority verifies tokens signed with the shared secret.
type AuthService struct {
	server    *server.Server
	authority *identity.HMACAuthority
}

func NewAuthService(s *server.Server) (*AuthService, error) {
	svc := &AuthService{server: s}

	switch s.Config.Auth.Provider {
	case config.AuthProviderJWT:
		authority, err := identity.NewHMACAuthority(s.Config.Auth.SecretKey, s.Config.Auth.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure jwt auth: %w", err)
		}
		svc.authority = authority
	default:
		clerk.SetKey(s.Config.Auth.SecretKey)
	}

	return svc, nil
}

// Verifier returns the token verifier the auth middleware should use, or nil
// when Clerk verifies tokens.
func (a *AuthService) Verifier() identity.Verifier {
	if a.authority == nil {
		return nil
	}
	return a.authority
}
