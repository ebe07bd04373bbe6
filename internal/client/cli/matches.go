package cli

import (
	"context"
	"fmt"

	"github.com/ventline/ventline/internal/client/api"
	"github.com/ventline/ventline/internal/client/models"
)

func (a *App) matchSuggestions(ctx context.Context) {
	matches, err := a.client.MatchSuggestions(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to load suggestions"))
		return
	}

	// Suggestions the user already accepted are waiting on the other side;
	// they show up under pending instead.
	visible := matches[:0]
	for _, m := range matches {
		if !m.Accepted {
			visible = append(visible, m)
		}
	}

	if len(visible) == 0 {
		fmt.Fprintln(a.out, "No match suggestions available.")
		return
	}
	fmt.Fprintln(a.out, "Suggestions:")
	for _, m := range visible {
		a.printMatch(m)
	}
}

func (a *App) pendingMatches(ctx context.Context) {
	pending, err := a.client.PendingMatches(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to load pending matches"))
		return
	}

	fmt.Fprintln(a.out, "Received:")
	if len(pending.Received) == 0 {
		fmt.Fprintln(a.out, "  (none)")
	}
	for _, m := range pending.Received {
		a.printMatch(m)
	}

	fmt.Fprintln(a.out, "Sent:")
	if len(pending.Sent) == 0 {
		fmt.Fprintln(a.out, "  (none)")
	}
	for _, m := range pending.Sent {
		a.printMatch(m)
	}
}

func (a *App) matchHistory(ctx context.Context) {
	history, err := a.client.MatchHistory(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to load match history"))
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No match history yet.")
		return
	}
	for _, record := range history {
		fmt.Fprintf(a.out, "- %s: %s (id %s)\n", record.Username, record.Outcome, record.ID)
	}
}

func (a *App) acceptMatch(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: accept <matchId>")
		return
	}
	if err := a.client.AcceptMatch(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to accept match"))
		return
	}
	fmt.Fprintln(a.out, "Match accepted!")
}

func (a *App) rejectMatch(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: reject <matchId>")
		return
	}
	if err := a.client.RejectMatch(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to reject match"))
		return
	}
	fmt.Fprintln(a.out, "Match rejected")
}

func (a *App) unmatchUser(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: unmatch <matchId>")
		return
	}
	if err := a.client.UnmatchUser(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to unmatch"))
		return
	}
	fmt.Fprintln(a.out, "Unmatched")
}

func (a *App) refreshMatches(ctx context.Context) {
	if err := a.client.RefreshMatches(ctx); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to refresh suggestions"))
		return
	}
	a.matchSuggestions(ctx)
}

func (a *App) printMatch(m models.Match) {
	fmt.Fprintf(a.out, "- %s [%s] score %.2f (id %s)\n", m.Username, m.Emotion, m.Score, m.ID)
}
