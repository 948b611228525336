package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/betimvpp/NlwSpacetimeServer/internal/config"
	"github.com/betimvpp/NlwSpacetimeServer/internal/lib/identity"
)

var errTokenProvider = errors.New("tokens can only be minted with auth.provider=jwt")

func newTokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		Long:  "Mint an HS256 bearer token signed with auth.secret_key. Only available with the jwt auth provider.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			token, expiresAt, err := mintToken(cfg.Auth, subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "user id placed in the sub claim")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func mintToken(auth config.AuthConfig, subject string) (string, time.Time, error) {
	if auth.Provider != config.AuthProviderJWT {
		return "", time.Time{}, errTokenProvider
	}

	authority, err := identity.NewHMACAuthority(auth.SecretKey, auth.TokenTTL)
	if err != nil {
		return "", time.Time{}, err
	}

	return authority.Issue(subject)
}
