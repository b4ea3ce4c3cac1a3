// Package party coordinates ephemeral workout groups: creation by
// invite code, joining, leaving, kicks, ownership succession, and
// disbanding. Every membership transition also maintains the
// denormalized party fields on the user record, inside one transaction.
package party

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

const (
	// InviteCodeLength is the length of generated invite codes.
	InviteCodeLength = 6

	// maxCodeAttempts bounds collision retries during generation.
	maxCodeAttempts = 10

	// MaxPartyNameLength caps party names after trimming.
	MaxPartyNameLength = 50
)

// inviteCodeAlphabet omits lookalike characters (0/O, 1/I/L).
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

type Service interface {
	// CreateParty creates a party with the caller as owner.
	CreateParty(ctx context.Context, ownerID, name string) (*domain.Party, error)

	// JoinParty adds the caller to the party holding the invite code.
	JoinParty(ctx context.Context, userID, inviteCode string) (*domain.Party, error)

	// LeaveParty removes the caller. An owner leaving hands ownership to
	// the earliest-joined remaining member; the last member leaving
	// disbands the party.
	LeaveParty(ctx context.Context, userID string) error

	// KickMember removes a member. Owner only; owners cannot kick
	// themselves.
	KickMember(ctx context.Context, ownerID, targetID string) (*domain.Party, error)

	// DisbandParty deactivates the party and clears every member's
	// membership. Owner only.
	DisbandParty(ctx context.Context, ownerID string) error

	// RegenerateInviteCode replaces the party's code. Owner only.
	RegenerateInviteCode(ctx context.Context, ownerID string) (*domain.Party, error)

	GetParty(ctx context.Context, partyID string) (*domain.Party, error)
	GetPartyForUser(ctx context.Context, userID string) (*domain.Party, error)
}

type service struct {
	repo repository.Party
	bus  event.Bus
	rng  *rand.Rand
	now  func() time.Time
}

// NewService creates a new party service. The rng drives invite code
// generation; tests pass a seeded source.
func NewService(repo repository.Party, bus event.Bus, rng *rand.Rand, now func() time.Time) Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, bus: bus, rng: rng, now: now}
}

func (s *service) CreateParty(ctx context.Context, ownerID, name string) (*domain.Party, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxPartyNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidPartyName, MaxPartyNameLength)
	}

	code, err := s.generateInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	party := &domain.Party{
		ID:         uuid.NewString(),
		Name:       name,
		InviteCode: code,
		OwnerID:    ownerID,
		Members: []domain.PartyMember{
			{UserID: ownerID, Role: domain.PartyRoleOwner, JoinedAt: now},
		},
		IsActive:  true,
		CreatedAt: now,
	}

	err = s.repo.Transact(ctx, func(tx repository.PartyTx) error {
		user, err := tx.GetUserForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		if user.PartyID != nil {
			return domain.ErrAlreadyInParty
		}

		if err := tx.SaveParty(ctx, party); err != nil {
			return err
		}
		setMembership(user, party.ID, domain.PartyRoleOwner, now)
		return tx.SaveUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Party created", "party_id", party.ID, "owner_id", ownerID, "name", name)
	s.publish(ctx, domain.EventTypePartyCreated, party.ID, ownerID, "")
	return party, nil
}

func (s *service) JoinParty(ctx context.Context, userID, inviteCode string) (*domain.Party, error) {
	log := logger.FromContext(ctx)

	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if len(inviteCode) != InviteCodeLength {
		return nil, fmt.Errorf("%w: code must be %d characters", domain.ErrInvalidInviteCode, InviteCodeLength)
	}

	var joined *domain.Party
	now := s.now().UTC()

	err := s.repo.Transact(ctx, func(tx repository.PartyTx) error {
		user, err := tx.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.PartyID != nil {
			return domain.ErrAlreadyInParty
		}

		party, err := tx.GetPartyByInviteCodeForUpdate(ctx, inviteCode)
		if err != nil {
			return err
		}
		if len(party.Members) >= domain.MaxPartyMembers {
			return domain.ErrPartyFull
		}

		party.Members = append(party.Members, domain.PartyMember{
			UserID: userID, Role: domain.PartyRoleMember, JoinedAt: now,
		})
		if err := tx.SaveParty(ctx, party); err != nil {
			return err
		}

		setMembership(user, party.ID, domain.PartyRoleMember, now)
		if err := tx.SaveUser(ctx, user); err != nil {
			return err
		}
		joined = party
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Party joined", "party_id", joined.ID, "user_id", userID)
	s.publish(ctx, domain.EventTypePartyJoined, joined.ID, userID, "")
	return joined, nil
}

func (s *service) LeaveParty(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	var (
		partyID   string
		newOwner  string
		disbanded bool
	)
	now := s.now().UTC()

	err := s.repo.Transact(ctx, func(tx repository.PartyTx) error {
		user, err := tx.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.PartyID == nil {
			return domain.ErrNotInParty
		}

		party, err := tx.GetPartyForUpdate(ctx, *user.PartyID)
		if err != nil {
			return err
		}
		if !party.IsActive {
			return domain.ErrPartyDisbanded
		}
		partyID = party.ID

		idx := party.MemberIndex(userID)
		if idx < 0 {
			return domain.ErrNotInParty
		}
		party.Members = append(party.Members[:idx], party.Members[idx+1:]...)

		switch {
		case len(party.Members) == 0:
			party.IsActive = false
			disbanded = true

		case party.OwnerID == userID:
			// Succession goes to the earliest-joined remaining member.
			successor := earliestMember(party.Members)
			party.OwnerID = successor
			newOwner = successor
			for i := range party.Members {
				if party.Members[i].UserID == successor {
					party.Members[i].Role = domain.PartyRoleOwner
				}
			}
			if err := promoteUser(ctx, tx, successor, now); err != nil {
				return err
			}
		}

		if err := tx.SaveParty(ctx, party); err != nil {
			return err
		}
		clearMembership(user, now)
		return tx.SaveUser(ctx, user)
	})
	if err != nil {
		return err
	}

	log.Info("Party left", "party_id", partyID, "user_id", userID, "disbanded", disbanded)
	s.publish(ctx, domain.EventTypePartyLeft, partyID, userID, "")
	if newOwner != "" {
		s.publish(ctx, domain.EventTypePartyOwnerChange, partyID, userID, newOwner)
	}
	if disbanded {
		s.publish(ctx, domain.EventTypePartyDisbanded, partyID, userID, "")
	}
	return nil
}

func (s *service) KickMember(ctx context.Context, ownerID, targetID string) (*domain.Party, error) {
	log := logger.FromContext(ctx)

	if ownerID == targetID {
		return nil, domain.ErrKickSelf
	}

	var kicked *domain.Party
	now := s.now().UTC()

	err := s.repo.Transact(ctx, func(tx repository.PartyTx) error {
		owner, err := tx.GetUserForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner.PartyID == nil {
			return domain.ErrNotInParty
		}

		party, err := tx.GetPartyForUpdate(ctx, *owner.PartyID)
		if err != nil {
			return err
		}
		if !party.IsActive {
			return domain.ErrPartyDisbanded
		}
		if party.OwnerID != ownerID {
			return domain.ErrNotPartyOwner
		}

		idx := party.MemberIndex(targetID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", domain.ErrNotInParty, targetID)
		}
		party.Members = append(party.Members[:idx], party.Members[idx+1:]...)
		if err := tx.SaveParty(ctx, party); err != nil {
			return err
		}

		target, err := tx.GetUserForUpdate(ctx, targetID)
		if err != nil {
			return err
		}
		clearMembership(target, now)
		if err := tx.SaveUser(ctx, target); err != nil {
			return err
		}
		kicked = party
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Party member kicked", "party_id", kicked.ID, "owner_id", ownerID, "target_id", targetID)
	s.publish(ctx, domain.EventTypePartyKicked, kicked.ID, targetID, "")
	return kicked, nil
}

func (s *service) DisbandParty(ctx context.Context, ownerID string) error {
	log := logger.FromContext(ctx)

	var partyID string
	now := s.now().UTC()

	err := s.repo.Transact(ctx, func(tx repository.PartyTx) error {
		owner, err := tx.GetUserForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner.PartyID == nil {
			return domain.ErrNotInParty
		}

		party, err := tx.GetPartyForUpdate(ctx, *owner.PartyID)
		if err != nil {
			return err
		}
		if !party.IsActive {
			return domain.ErrPartyDisbanded
		}
		if party.OwnerID != ownerID {
			return domain.ErrNotPartyOwner
		}
		partyID = party.ID

		for _, m := range party.Members {
			member, err := tx.GetUserForUpdate(ctx, m.UserID)
			if err != nil {
				return err
			}
			clearMembership(member, now)
			if err := tx.SaveUser(ctx, member); err != nil {
				return err
			}
		}

		party.IsActive = false
		party.Members = nil
		return tx.SaveParty(ctx, party)
	})
	if err != nil {
		return err
	}

	log.Info("Party disbanded", "party_id", partyID, "owner_id", ownerID)
	s.publish(ctx, domain.EventTypePartyDisbanded, partyID, ownerID, "")
	return nil
}

func (s *service) RegenerateInviteCode(ctx context.Context, ownerID string) (*domain.Party, error) {
	log := logger.FromContext(ctx)

	code, err := s.generateInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	var updated *domain.Party
	err = s.repo.Transact(ctx, func(tx repository.PartyTx) error {
		owner, err := tx.GetUserForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner.PartyID == nil {
			return domain.ErrNotInParty
		}

		party, err := tx.GetPartyForUpdate(ctx, *owner.PartyID)
		if err != nil {
			return err
		}
		if !party.IsActive {
			return domain.ErrPartyDisbanded
		}
		if party.OwnerID != ownerID {
			return domain.ErrNotPartyOwner
		}

		party.InviteCode = code
		updated = party
		return tx.SaveParty(ctx, party)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Party invite code regenerated", "party_id", updated.ID, "owner_id", ownerID)
	return updated, nil
}

func (s *service) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	return s.repo.GetParty(ctx, partyID)
}

func (s *service) GetPartyForUser(ctx context.Context, userID string) (*domain.Party, error) {
	return s.repo.GetPartyByMember(ctx, userID)
}

// generateInviteCode draws random codes until one is free, bounded by
// maxCodeAttempts.
func (s *service) generateInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := make([]byte, InviteCodeLength)
		for i := range code {
			code[i] = inviteCodeAlphabet[s.rng.Intn(len(inviteCodeAlphabet))]
		}

		taken, err := s.repo.IsInviteCodeTaken(ctx, string(code))
		if err != nil {
			return "", err
		}
		if !taken {
			return string(code), nil
		}
	}
	return "", domain.ErrCodeGeneration
}

func (s *service) publish(ctx context.Context, eventType domain.EventType, partyID, userID, newOwnerID string) {
	if s.bus == nil {
		return
	}
	log := logger.FromContext(ctx)

	if err := s.bus.Publish(ctx, event.NewPartyEvent(eventType, partyID, userID, newOwnerID)); err != nil {
		log.Warn("Party event publish failed", "error", err, "party_id", partyID, "type", eventType)
	}
}

func promoteUser(ctx context.Context, tx repository.PartyTx, userID string, now time.Time) error {
	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	role := domain.PartyRoleOwner
	user.PartyRole = &role
	user.UpdatedAt = now
	return tx.SaveUser(ctx, user)
}

func setMembership(user *domain.UserProgress, partyID string, role domain.PartyRole, now time.Time) {
	user.PartyID = &partyID
	user.PartyRole = &role
	user.UpdatedAt = now
}

func clearMembership(user *domain.UserProgress, now time.Time) {
	user.PartyID = nil
	user.PartyRole = nil
	user.UpdatedAt = now
}

// earliestMember returns the user who joined first
func earliestMember(members []domain.PartyMember) string {
	best := members[0]
	for _, m := range members[1:] {
		if m.JoinedAt.Before(best.JoinedAt) {
			best = m
		}
	}
	return best.UserID
}
