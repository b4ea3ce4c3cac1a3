package domain

import "time"

// MaxPartyMembers caps party size.
const MaxPartyMembers = 8

// PartyMember is one entry of a party's ordered member list. Join
// order decides ownership succession.
type PartyMember struct {
	UserID   string    `json:"user_id"`
	Role     PartyRole `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Party is an ephemeral workout group. IsActive=false is terminal:
// a disbanded party is immutable and its invite code is freed.
type Party struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	InviteCode string        `json:"invite_code"`
	OwnerID    string        `json:"owner_id"`
	Members    []PartyMember `json:"members"`
	IsActive   bool          `json:"is_active"`
	CreatedAt  time.Time     `json:"created_at"`
}

// MemberIndex returns the index of userID in the member list, or -1.
func (p *Party) MemberIndex(userID string) int {
	for i, m := range p.Members {
		if m.UserID == userID {
			return i
		}
	}
	return -1
}

// HasMember reports whether userID is a current member.
func (p *Party) HasMember(userID string) bool {
	return p.MemberIndex(userID) >= 0
}
