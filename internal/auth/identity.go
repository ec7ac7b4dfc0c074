package auth

import "github.com/heartmarshall/makerlab-backend/internal/domain"

// OAuthIdentity represents user information obtained from an OAuth provider.
type OAuthIdentity struct {
	Email      string
	Name       *string
	AvatarURL  *string
	ProviderID string
}

// ToDomain converts the provider identity into the signed-in Identity.
func (o *OAuthIdentity) ToDomain() *domain.Identity {
	id := &domain.Identity{
		Subject: o.ProviderID,
		Email:   o.Email,
	}
	if o.Name != nil {
		id.DisplayName = *o.Name
	}
	if o.AvatarURL != nil {
		id.AvatarURL = *o.AvatarURL
	}
	return id
}
