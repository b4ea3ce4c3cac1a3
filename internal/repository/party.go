package repository

import (
	"context"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// PartyTx exposes the operations available inside one party
// transaction. Reads take row-level locks so racing transitions on the
// same party serialize; the loser re-reads fresh state.
type PartyTx interface {
	GetPartyForUpdate(ctx context.Context, partyID string) (*domain.Party, error)
	GetPartyByInviteCodeForUpdate(ctx context.Context, code string) (*domain.Party, error)
	SaveParty(ctx context.Context, party *domain.Party) error

	GetUserForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error)
	SaveUser(ctx context.Context, user *domain.UserProgress) error
}

// Party is the storage contract for parties. Invite codes are unique
// among active parties. Every membership transition goes through
// Transact so the party record and the denormalized user-side
// membership fields commit or roll back together.
type Party interface {
	CreateParty(ctx context.Context, party *domain.Party) error
	GetParty(ctx context.Context, partyID string) (*domain.Party, error)

	// GetPartyByInviteCode resolves an active party by code, or
	// domain.ErrPartyNotFound.
	GetPartyByInviteCode(ctx context.Context, code string) (*domain.Party, error)

	// GetPartyByMember returns the active party containing the user,
	// or domain.ErrPartyNotFound.
	GetPartyByMember(ctx context.Context, userID string) (*domain.Party, error)

	// IsInviteCodeTaken reports whether an active party holds the code.
	IsInviteCodeTaken(ctx context.Context, code string) (bool, error)

	// Transact runs fn atomically. If fn returns an error every write
	// made through the tx is rolled back and the error is returned.
	Transact(ctx context.Context, fn func(tx PartyTx) error) error
}
