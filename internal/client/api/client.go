// Package api wraps the vent platform's REST API: one method per remote
// capability, uniform error mapping, bearer token on every call once a
// session exists. No retries, caching, or batching; each call is one
// round trip.
package api

import (
	"context"

	"github.com/ventline/ventline/internal/client/models"
)

// ListOptions narrows a vent listing.
type ListOptions struct {
	Sort  string // "recent" or "trending"
	Page  int
	Limit int
}

// Client is the remote API surface the rest of the application talks to.
type Client interface {
	Close() error

	// Auth.
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (*models.AuthResult, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	GetUserDetails(ctx context.Context, userID string) (*models.User, error)
	ChangeUsername(ctx context.Context, newUsername string) (*models.User, error)
	UpdateUserDetails(ctx context.Context, details models.ProfileDetails) (*models.AuthResult, error)

	// Vents.
	CreateVent(ctx context.Context, vent models.NewVent) error
	ListVents(ctx context.Context, opts ListOptions) ([]models.Vent, error)
	FeedVents(ctx context.Context, page, limit int) ([]models.Vent, error)
	MyVents(ctx context.Context) ([]models.Vent, error)
	SearchVents(ctx context.Context, query string) ([]models.Vent, error)
	ReactToVent(ctx context.Context, ventID string, reaction models.Reaction) error
	DeleteVent(ctx context.Context, ventID string) error
	ReportVent(ctx context.Context, ventID string, reason string) error

	// Matches.
	MatchSuggestions(ctx context.Context) ([]models.Match, error)
	PendingMatches(ctx context.Context) (*models.PendingMatches, error)
	MatchHistory(ctx context.Context) ([]models.MatchRecord, error)
	AcceptMatch(ctx context.Context, matchID string) error
	RejectMatch(ctx context.Context, matchID string) error
	UnmatchUser(ctx context.Context, matchID string) error
	RefreshMatches(ctx context.Context) error
}
