package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Emotion tags a vent with the author's mood.
type Emotion string

const (
	EmotionHappy   Emotion = "Happy"
	EmotionSad     Emotion = "Sad"
	EmotionAngry   Emotion = "Angry"
	EmotionAnxious Emotion = "Anxious"
	EmotionNeutral Emotion = "Neutral"
	EmotionBurnout Emotion = "Burnout"
)

// Emotions lists the accepted emotion tags in display order.
var Emotions = []Emotion{
	EmotionHappy, EmotionSad, EmotionAngry,
	EmotionAnxious, EmotionNeutral, EmotionBurnout,
}

func (e Emotion) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

// Reaction is one of the fixed reactions a reader can leave on a vent.
type Reaction string

const (
	ReactionHeart  Reaction = "heart"
	ReactionHug    Reaction = "hug"
	ReactionListen Reaction = "listen"
)

func (r Reaction) Valid() bool {
	switch r {
	case ReactionHeart, ReactionHug, ReactionListen:
		return true
	}
	return false
}

// ReportReason classifies a vent report.
type ReportReason string

const (
	ReportInappropriate ReportReason = "Inappropriate Content"
	ReportHarassment    ReportReason = "Harassment"
	ReportSpam          ReportReason = "Spam"
	ReportOther         ReportReason = "Other"
)

// ReportReasons lists the accepted reasons in display order.
var ReportReasons = []ReportReason{
	ReportInappropriate, ReportHarassment, ReportSpam, ReportOther,
}

func (r ReportReason) Valid() bool {
	for _, known := range ReportReasons {
		if r == known {
			return true
		}
	}
	return false
}

// FormatReportReason builds the reason string the server expects. For
// ReportOther with free text the result is "Other: <text>"; for every other
// reason the detail is ignored.
func FormatReportReason(reason ReportReason, detail string) string {
	if reason == ReportOther && detail != "" {
		return string(ReportOther) + ": " + detail
	}
	return string(reason)
}

// ventOwner tolerates both owner encodings the server uses: a raw id string or
// a populated user sub-object.
type ventOwner struct {
	ID       string
	Username string
}

func (o *ventOwner) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		o.ID = id
		return nil
	}
	var populated struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(data, &populated); err != nil {
		return errors.New("vent owner is neither an id nor a user object")
	}
	o.ID = populated.ID
	o.Username = populated.Username
	return nil
}

// Vent is an anonymous post.
type Vent struct {
	ID        string         `json:"_id"`
	Owner     ventOwner      `json:"user"`
	Title     string         `json:"title"`
	Text      string         `json:"text"`
	Emotion   Emotion        `json:"emotion"`
	Hashtags  []string       `json:"hashtags"`
	Reactions map[string]int `json:"reactions"`
	CreatedAt time.Time      `json:"createdAt"`
}

// UserID returns the owning user's id regardless of how the server encoded
// the owner field. Ownership checks must always compare this resolved id.
func (v *Vent) UserID() string {
	return v.Owner.ID
}

// NewVent is the create-vent request payload.
type NewVent struct {
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Emotion  Emotion  `json:"emotion"`
	Hashtags []string `json:"hashtags"`
}
