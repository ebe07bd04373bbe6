// Package models defines the data shapes exchanged with the vent platform API.
package models

// MatchPreference selects how the server should score match suggestions.
type MatchPreference string

const (
	MatchPreferenceSimilar   MatchPreference = "Similar"
	MatchPreferenceDifferent MatchPreference = "Different"
	MatchPreferenceBalanced  MatchPreference = "Balanced"
)

// Valid reports whether p is one of the known preferences. The empty value is
// allowed: the server treats an absent preference as "not chosen yet".
func (p MatchPreference) Valid() bool {
	switch p {
	case "", MatchPreferenceSimilar, MatchPreferenceDifferent, MatchPreferenceBalanced:
		return true
	}
	return false
}

// Preferences holds a user's matching settings.
type Preferences struct {
	MatchPreference MatchPreference `json:"matchPreference,omitempty"`
	AnonymousChat   bool            `json:"anonymousChat"`
}

// User is the authenticated identity's profile as returned by the server.
type User struct {
	ID                string      `json:"_id"`
	Username          string      `json:"username"`
	Bio               string      `json:"bio"`
	Interests         []string    `json:"interests"`
	Likes             []string    `json:"likes"`
	Dislikes          []string    `json:"dislikes"`
	Preferences       Preferences `json:"preferences"`
	ProfilePictureRef string      `json:"profilePicture"`
}

// ProfileDetails is the payload for the update-details endpoint. Empty values
// are legal: completing the profile is optional.
type ProfileDetails struct {
	Bio         string      `json:"bio"`
	Interests   []string    `json:"interests"`
	Likes       []string    `json:"likes"`
	Dislikes    []string    `json:"dislikes"`
	Preferences Preferences `json:"preferences"`
}

// AuthResult is returned by endpoints that (re)establish a session.
// Token may be empty on update-details responses that only refresh the user.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
