package domain

import "time"

// MaxDefenders caps the defender list of a location.
const MaxDefenders = 6

// Club groups users for territory control. TotalPower and
// TerritoriesControlled are derived, recomputed on read.
type Club struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tag       string    `json:"tag"`
	Members   []string  `json:"members"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether userID belongs to the club.
func (c *Club) HasMember(userID string) bool {
	for _, id := range c.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// Defender is one entry of a location's defender list.
type Defender struct {
	UserID string `json:"user_id"`
	Level  int    `json:"level"`
}

// GymLocation is a real-world location a club can control.
// Invariant: ControlStrength == 0 exactly when ControllingClubID is nil.
type GymLocation struct {
	ID      string `json:"id"`
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`

	ControllingClubID *string    `json:"controlling_club_id,omitempty"`
	ControlStrength   int        `json:"control_strength"` // >= 0
	Defenders         []Defender `json:"defenders"`        // <= MaxDefenders

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsControlled reports whether any club holds the location.
func (g *GymLocation) IsControlled() bool {
	return g.ControllingClubID != nil
}

// HasDefender reports whether userID is on the defender list.
func (g *GymLocation) HasDefender(userID string) bool {
	for _, d := range g.Defenders {
		if d.UserID == userID {
			return true
		}
	}
	return false
}

// BattleResult describes one resolved territory challenge, with enough
// data to reconstruct the fight for an activity feed.
type BattleResult struct {
	LocationID      string    `json:"location_id"`
	AttackerID      string    `json:"attacker_id"`
	AttackerClubID  string    `json:"attacker_club_id"`
	DefenderClubID  string    `json:"defender_club_id"`
	AttackPower     int       `json:"attack_power"`
	DefensePower    int       `json:"defense_power"`
	AttackerWon     bool      `json:"attacker_won"`
	ControlStrength int       `json:"control_strength"` // strength after resolution
	ResolvedAt      time.Time `json:"resolved_at"`
}
