package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ventline/ventline/internal/client/api"
	"github.com/ventline/ventline/internal/client/authflow"
	"github.com/ventline/ventline/internal/client/models"
)

func (a *App) whoami() {
	identity := a.store.Current().Identity
	if identity == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	a.printUser(identity)
}

// showProfile fetches and prints a profile: the caller's own when no id is
// given, another user's otherwise.
func (a *App) showProfile(ctx context.Context, args []string) {
	userID := ""
	if len(args) > 0 {
		userID = args[0]
	} else if identity := a.store.Current().Identity; identity != nil {
		userID = identity.ID
	}
	if userID == "" {
		fmt.Fprintln(a.out, "Usage: profile [userId]")
		return
	}

	user, err := a.client.GetUserDetails(ctx, userID)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to fetch profile"))
		return
	}
	a.printUser(user)
}

// updateProfile edits the profile outside the signup flow: an optional
// username change followed by the detail update, then a re-login with the
// refreshed identity the server returns.
func (a *App) updateProfile(ctx context.Context) {
	update, err := a.promptProfile()
	if err != nil {
		return
	}

	current := a.store.Current().Identity
	if update.Username != "" && (current == nil || update.Username != current.Username) {
		if _, err := a.client.ChangeUsername(ctx, update.Username); err != nil {
			fmt.Fprintln(a.out, api.UserMessage(err, "Failed to change username"))
			return
		}
	}

	auth, err := a.client.UpdateUserDetails(ctx, update.Details)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Profile update failed"))
		return
	}

	token := auth.Token
	if token == "" {
		token = a.store.Token()
	}
	if err := a.store.Login(ctx, token, auth.User); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Profile saved")
}

// promptProfile collects the profile fields interactively. Empty answers are
// allowed everywhere; the whole step is optional.
func (a *App) promptProfile() (authflow.ProfileUpdate, error) {
	var update authflow.ProfileUpdate

	username, err := getSimpleText(a.reader, "Username (empty to keep current)", a.out)
	if err != nil {
		return update, err
	}
	bio, err := getSimpleText(a.reader, "Bio", a.out)
	if err != nil {
		return update, err
	}
	interests, err := getSimpleText(a.reader, "Interests (comma separated)", a.out)
	if err != nil {
		return update, err
	}
	likes, err := getSimpleText(a.reader, "Likes (comma separated)", a.out)
	if err != nil {
		return update, err
	}
	dislikes, err := getSimpleText(a.reader, "Dislikes (comma separated)", a.out)
	if err != nil {
		return update, err
	}

	var pref models.MatchPreference
	for {
		answer, err := getSimpleText(a.reader, "Match preference (Similar/Different/Balanced, empty to skip)", a.out)
		if err != nil {
			return update, err
		}
		pref = models.MatchPreference(answer)
		if pref.Valid() {
			break
		}
		fmt.Fprintln(a.out, "Please answer Similar, Different, Balanced or leave empty")
	}

	anon, err := getSimpleText(a.reader, "Allow anonymous chat? (y/N)", a.out)
	if err != nil {
		return update, err
	}

	update.Username = username
	update.Details = models.ProfileDetails{
		Bio:       bio,
		Interests: splitList(interests),
		Likes:     splitList(likes),
		Dislikes:  splitList(dislikes),
		Preferences: models.Preferences{
			MatchPreference: pref,
			AnonymousChat:   anon == "y" || anon == "Y",
		},
	}
	return update, nil
}

func (a *App) printUser(user *models.User) {
	fmt.Fprintf(a.out, "%s (%s)\n", user.Username, user.ID)
	if user.Bio != "" {
		fmt.Fprintln(a.out, "  bio:      ", user.Bio)
	}
	if len(user.Interests) > 0 {
		fmt.Fprintln(a.out, "  interests:", strings.Join(user.Interests, ", "))
	}
	if len(user.Likes) > 0 {
		fmt.Fprintln(a.out, "  likes:    ", strings.Join(user.Likes, ", "))
	}
	if len(user.Dislikes) > 0 {
		fmt.Fprintln(a.out, "  dislikes: ", strings.Join(user.Dislikes, ", "))
	}
	if user.Preferences.MatchPreference != "" {
		fmt.Fprintln(a.out, "  matching: ", string(user.Preferences.MatchPreference))
	}
}

// splitList turns "a, b ,c" into {"a","b","c"}, dropping empty items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
