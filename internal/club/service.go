// Package club manages club membership. Clubs exist to contest gym
// territory; their derived standing (territories held) is recomputed
// from the territory store rather than stored.
package club

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

const (
	MaxClubNameLength = 50
	MinTagLength      = 2
	MaxTagLength      = 5
)

// Summary is a club with its derived standings.
type Summary struct {
	Club                  domain.Club `json:"club"`
	TerritoriesControlled int         `json:"territories_controlled"`
}

type Service interface {
	// CreateClub creates a club with the caller as first member.
	CreateClub(ctx context.Context, userID, name, tag string) (*domain.Club, error)

	JoinClub(ctx context.Context, userID, clubID string) (*domain.Club, error)
	LeaveClub(ctx context.Context, userID string) error

	GetClub(ctx context.Context, clubID string) (*Summary, error)
	GetClubForUser(ctx context.Context, userID string) (*Summary, error)
}

type service struct {
	repo      repository.Club
	users     repository.User
	territory repository.Territory
	now       func() time.Time
}

// NewService creates a new club service
func NewService(repo repository.Club, users repository.User, territory repository.Territory, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, users: users, territory: territory, now: now}
}

func (s *service) CreateClub(ctx context.Context, userID, name, tag string) (*domain.Club, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if name == "" || len(name) > MaxClubNameLength {
		return nil, fmt.Errorf("%w: club name must be 1-%d characters", domain.ErrInvalidPartyName, MaxClubNameLength)
	}
	if len(tag) < MinTagLength || len(tag) > MaxTagLength {
		return nil, fmt.Errorf("%w: club tag must be %d-%d characters", domain.ErrInvalidPartyName, MinTagLength, MaxTagLength)
	}

	club := &domain.Club{
		ID:        uuid.NewString(),
		Name:      name,
		Tag:       tag,
		Members:   []string{userID},
		CreatedAt: s.now().UTC(),
	}

	// Membership is exclusive; joining the club mirrors onto the user
	// record before the club is persisted.
	if _, err := s.users.MutateUser(ctx, userID, func(u *domain.UserProgress) error {
		if u.ClubID != nil {
			return domain.ErrAlreadyMember
		}
		u.ClubID = &club.ID
		u.UpdatedAt = s.now().UTC()
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.repo.CreateClub(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	log.Info("Club created", "club_id", club.ID, "name", name, "tag", tag, "founder_id", userID)
	return club, nil
}

func (s *service) JoinClub(ctx context.Context, userID, clubID string) (*domain.Club, error) {
	log := logger.FromContext(ctx)

	if _, err := s.repo.GetClub(ctx, clubID); err != nil {
		return nil, err
	}

	if _, err := s.users.MutateUser(ctx, userID, func(u *domain.UserProgress) error {
		if u.ClubID != nil {
			return domain.ErrAlreadyMember
		}
		u.ClubID = &clubID
		u.UpdatedAt = s.now().UTC()
		return nil
	}); err != nil {
		return nil, err
	}

	joined, err := s.repo.MutateClub(ctx, clubID, func(c *domain.Club) error {
		if c.HasMember(userID) {
			return domain.ErrAlreadyMember
		}
		c.Members = append(c.Members, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Club joined", "club_id", clubID, "user_id", userID)
	return joined, nil
}

func (s *service) LeaveClub(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	club, err := s.repo.GetClubByMember(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.ErrNotInClub
		}
		return err
	}

	if _, err := s.repo.MutateClub(ctx, club.ID, func(c *domain.Club) error {
		for i, id := range c.Members {
			if id == userID {
				c.Members = append(c.Members[:i], c.Members[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotInClub
	}); err != nil {
		return err
	}

	if _, err := s.users.MutateUser(ctx, userID, func(u *domain.UserProgress) error {
		u.ClubID = nil
		u.UpdatedAt = s.now().UTC()
		return nil
	}); err != nil {
		return err
	}

	log.Info("Club left", "club_id", club.ID, "user_id", userID)
	return nil
}

func (s *service) GetClub(ctx context.Context, clubID string) (*Summary, error) {
	club, err := s.repo.GetClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, club)
}

func (s *service) GetClubForUser(ctx context.Context, userID string) (*Summary, error) {
	club, err := s.repo.GetClubByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, club)
}

func (s *service) summarize(ctx context.Context, club *domain.Club) (*Summary, error) {
	controlled, err := s.territory.CountControlledBy(ctx, club.ID)
	if err != nil {
		return nil, err
	}
	return &Summary{Club: *club, TerritoriesControlled: controlled}, nil
}
