package domain

import "time"

const (
	RoleRegular = "Regular"
	RoleAdmin   = "Admin"
)

// User models a registered identity.
//
// RefreshToken holds the single live refresh token for this user, or the
// empty string when no session is active. Logging in overwrites it, so the
// previous session's refresh token stops matching and can no longer be
// rotated; logging out clears it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Group names a set of users addressed by email. Only the member email set
// matters for authorization; anything else on the group document stays in
// the group store.
type Group struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MemberEmails []string `json:"member_emails"`
}

// HasMember reports whether email belongs to the group.
func (g *Group) HasMember(email string) bool {
	for _, e := range g.MemberEmails {
		if e == email {
			return true
		}
	}
	return false
}
