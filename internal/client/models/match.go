package models

import "time"

// Match is a server-computed pairing suggestion between two users.
type Match struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Emotion     Emotion   `json:"emotion"`
	Score       float64   `json:"score"`
	Accepted    bool      `json:"accepted"`
	SuggestedAt time.Time `json:"suggestedAt"`
}

// PendingMatches groups matches awaiting the other side's decision.
type PendingMatches struct {
	Received []Match `json:"receivedMatches"`
	Sent     []Match `json:"sentMatches"`
}

// MatchRecord is one entry of the match history.
type MatchRecord struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Outcome   string    `json:"outcome"`
	MatchedAt time.Time `json:"matchedAt"`
}
