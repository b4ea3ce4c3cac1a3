package domain

import "time"

// RaidBoss is a cooperative shared-HP target. CurrentHP only ever
// decreases until a new boss is spawned.
type RaidBoss struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	TotalHP   int `json:"total_hp"`
	CurrentHP int `json:"current_hp"` // >= 0

	// Vulnerability is the exercise that damages this boss.
	Vulnerability Exercise `json:"vulnerability"`

	Participants []string `json:"participants"`

	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	DefeatedAt *time.Time `json:"defeated_at,omitempty"`
}

// HasParticipant reports whether userID already joined the raid.
func (b *RaidBoss) HasParticipant(userID string) bool {
	for _, id := range b.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
