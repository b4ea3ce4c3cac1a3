package domain

import "time"

// DuelStatus represents the state of a duel
type DuelStatus string

const (
	DuelStatusPending   DuelStatus = "pending"
	DuelStatusActive    DuelStatus = "active"
	DuelStatusCompleted DuelStatus = "completed"
	DuelStatusDeclined  DuelStatus = "declined"
	DuelStatusExpired   DuelStatus = "expired"
)

// IsTerminal reports whether the status is final. Terminal duels are
// immutable.
func (s DuelStatus) IsTerminal() bool {
	return s == DuelStatusCompleted || s == DuelStatusDeclined || s == DuelStatusExpired
}

// Duel is a head-to-head rep race over a time window. The challenge
// type names the exercise both sides score with, or "any".
type Duel struct {
	ID           string     `json:"id"`
	ChallengerID string     `json:"challenger_id"`
	OpponentID   string     `json:"opponent_id"`
	Status       DuelStatus `json:"status"`

	ChallengeType string         `json:"challenge_type"`
	Scores        map[string]int `json:"scores"`

	CreatedAt   time.Time  `json:"created_at"`
	Deadline    time.Time  `json:"deadline"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// WinnerID is nil for unresolved duels and for draws.
	WinnerID *string `json:"winner_id,omitempty"`
}

// Involves reports whether userID is a participant.
func (d *Duel) Involves(userID string) bool {
	return d.ChallengerID == userID || d.OpponentID == userID
}

// MatchesExercise reports whether a workout of the given exercise
// scores in this duel.
func (d *Duel) MatchesExercise(e Exercise) bool {
	return d.ChallengeType == QuestMetricAny || d.ChallengeType == string(e)
}
