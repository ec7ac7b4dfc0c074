package domain

// Identity is the signed-in user of a workspace. It lives only in memory and
// is cleared on sign-out.
type Identity struct {
	Subject     string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Label returns the name shown as a project creator.
func (i *Identity) Label() string {
	if i == nil {
		return ""
	}
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Email
}
