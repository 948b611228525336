package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
)

// ClerkDirectory looks users up through the Clerk backend API.
type ClerkDirectory struct {
	users *user.Client
}

// NewClerkDirectory returns a directory authenticated with the Clerk secret key.
func NewClerkDirectory(secretKey string) *ClerkDirectory {
	return &ClerkDirectory{
		users: user.NewClient(&clerk.ClientConfig{
			BackendConfig: clerk.BackendConfig{Key: clerk.String(secretKey)},
		}),
	}
}

func (d *ClerkDirectory) Lookup(ctx context.Context, userID string) (*Profile, error) {
	u, err := d.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clerk user %s: %w", userID, err)
	}
	return profileFromClerkUser(u)
}

func profileFromClerkUser(u *clerk.User) (*Profile, error) {
	if u == nil {
		return nil, errors.New("clerk returned no user")
	}

	profile := &Profile{UserID: u.ID}
	if u.FirstName != nil {
		profile.FirstName = *u.FirstName
	}

	for _, addr := range u.EmailAddresses {
		if addr == nil {
			continue
		}
		if u.PrimaryEmailAddressID != nil && addr.ID == *u.PrimaryEmailAddressID {
			profile.Email = addr.EmailAddress
			break
		}
		if profile.Email == "" {
			profile.Email = addr.EmailAddress
		}
	}

	if profile.Email == "" {
		return nil, fmt.Errorf("clerk user %s has no email address", u.ID)
	}

	return profile, nil
}
