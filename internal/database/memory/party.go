package memory

import (
	"context"
	"sync"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

// PartyRepository is an in-memory repository.Party implementation.
// It shares the user repository so party transitions and the
// denormalized user membership fields commit together, matching the
// store's transactional contract.
type PartyRepository struct {
	mu      sync.Mutex
	parties map[string]*domain.Party
	users   *UserRepository
}

// NewPartyRepository creates an in-memory party repository writing
// user-side membership through the given user repository.
func NewPartyRepository(users *UserRepository) *PartyRepository {
	return &PartyRepository{
		parties: make(map[string]*domain.Party),
		users:   users,
	}
}

func (r *PartyRepository) CreateParty(ctx context.Context, party *domain.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.parties {
		if p.IsActive && p.InviteCode == party.InviteCode {
			return domain.ErrInvalidInviteCode
		}
	}
	r.parties[party.ID] = clone(party)
	return nil
}

func (r *PartyRepository) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parties[partyID]
	if !ok {
		return nil, domain.ErrPartyNotFound
	}
	return clone(p), nil
}

func (r *PartyRepository) GetPartyByInviteCode(ctx context.Context, code string) (*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findByCodeLocked(code)
	if p == nil {
		return nil, domain.ErrPartyNotFound
	}
	return clone(p), nil
}

func (r *PartyRepository) GetPartyByMember(ctx context.Context, userID string) (*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.parties {
		if p.IsActive && p.HasMember(userID) {
			return clone(p), nil
		}
	}
	return nil, domain.ErrPartyNotFound
}

func (r *PartyRepository) IsInviteCodeTaken(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.findByCodeLocked(code) != nil, nil
}

func (r *PartyRepository) findByCodeLocked(code string) *domain.Party {
	for _, p := range r.parties {
		if p.IsActive && p.InviteCode == code {
			return p
		}
	}
	return nil
}

// Transact serializes all party transitions under one lock and stages
// writes that only land if fn succeeds.
func (r *PartyRepository) Transact(ctx context.Context, fn func(tx repository.PartyTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users.mu.Lock()
	defer r.users.mu.Unlock()

	tx := &partyTx{repo: r, stagedParties: make(map[string]*domain.Party), stagedUsers: make(map[string]*domain.UserProgress)}
	if err := fn(tx); err != nil {
		return err
	}

	for id, p := range tx.stagedParties {
		r.parties[id] = p
	}
	for id, u := range tx.stagedUsers {
		r.users.users[id] = u
	}
	return nil
}

type partyTx struct {
	repo          *PartyRepository
	stagedParties map[string]*domain.Party
	stagedUsers   map[string]*domain.UserProgress
}

func (t *partyTx) GetPartyForUpdate(ctx context.Context, partyID string) (*domain.Party, error) {
	if p, ok := t.stagedParties[partyID]; ok {
		return clone(p), nil
	}
	p, ok := t.repo.parties[partyID]
	if !ok {
		return nil, domain.ErrPartyNotFound
	}
	return clone(p), nil
}

func (t *partyTx) GetPartyByInviteCodeForUpdate(ctx context.Context, code string) (*domain.Party, error) {
	for _, p := range t.stagedParties {
		if p.IsActive && p.InviteCode == code {
			return clone(p), nil
		}
	}
	p := t.repo.findByCodeLocked(code)
	if p == nil {
		return nil, domain.ErrPartyNotFound
	}
	return clone(p), nil
}

func (t *partyTx) SaveParty(ctx context.Context, party *domain.Party) error {
	t.stagedParties[party.ID] = clone(party)
	return nil
}

func (t *partyTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error) {
	if u, ok := t.stagedUsers[userID]; ok {
		return clone(u), nil
	}
	u, ok := t.repo.users.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (t *partyTx) SaveUser(ctx context.Context, user *domain.UserProgress) error {
	t.stagedUsers[user.ID] = clone(user)
	return nil
}
