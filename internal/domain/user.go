package domain

import "time"

// EquipmentSlot identifies where an item is worn.
type EquipmentSlot string

const (
	SlotHead   EquipmentSlot = "head"
	SlotChest  EquipmentSlot = "chest"
	SlotHands  EquipmentSlot = "hands"
	SlotLegs   EquipmentSlot = "legs"
	SlotFeet   EquipmentSlot = "feet"
)

// ValidEquipmentSlots lists every slot an item may occupy.
var ValidEquipmentSlots = []EquipmentSlot{SlotHead, SlotChest, SlotHands, SlotLegs, SlotFeet}

// IsValidEquipmentSlot reports whether slot is a known equipment slot.
func IsValidEquipmentSlot(slot EquipmentSlot) bool {
	for _, s := range ValidEquipmentSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// PartyRole is a member's role inside a party.
type PartyRole string

const (
	PartyRoleOwner  PartyRole = "owner"
	PartyRoleMember PartyRole = "member"
)

// UserProgress is the canonical per-user progression record.
// Numeric fields (level, xp, stats, streak) are written only by the
// progression ledger; party fields only by the party coordinator.
type UserProgress struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	Level int `json:"level"` // >= 1
	XP    int `json:"xp"`    // xp into current level, always < threshold(level)

	Strength  int `json:"strength"`
	Endurance int `json:"endurance"`
	Agility   int `json:"agility"`

	WorkoutStreak   int        `json:"workout_streak"`
	LastWorkoutDate *time.Time `json:"last_workout_date,omitempty"`
	TotalWorkouts   int        `json:"total_workouts"`
	LifetimeReps    int        `json:"lifetime_reps"`

	Equipment map[EquipmentSlot]string `json:"equipment,omitempty"`
	Inventory []string                 `json:"inventory,omitempty"`

	// Denormalized party membership, maintained by the party coordinator only.
	PartyID   *string    `json:"party_id,omitempty"`
	PartyRole *PartyRole `json:"party_role,omitempty"`

	ClubID *string `json:"club_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserProgress returns a fresh record for a newly registered user.
func NewUserProgress(id, username string, now time.Time) *UserProgress {
	return &UserProgress{
		ID:        id,
		Username:  username,
		Level:     1,
		Equipment: make(map[EquipmentSlot]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasInventoryItem reports whether itemID is in the user's inventory.
func (u *UserProgress) HasInventoryItem(itemID string) bool {
	for _, id := range u.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// RemoveInventoryItem removes the first occurrence of itemID from the
// inventory. Returns false if the item is not present.
func (u *UserProgress) RemoveInventoryItem(itemID string) bool {
	for i, id := range u.Inventory {
		if id == itemID {
			u.Inventory = append(u.Inventory[:i], u.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// LeaderboardEntry is a single row of the level/xp leaderboard.
type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
}
