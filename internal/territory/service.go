// Package territory runs the gym control game: clubs claim real-world
// gym locations, challenge rivals for them, and shore up defenses.
// Battle rolls come from an injected rng so outcomes are testable.
package territory

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
	// StrengthPerLevel is the base control strength per claimer level.
	StrengthPerLevel = 10

	// BattleJitter is the exclusive upper bound of each side's random
	// battle roll.
	BattleJitter = 20

	// DefendStrengthPerLevel is the strength a defender adds per level.
	DefendStrengthPerLevel = 5

	// MaxChallengeWeaken is the strength a near-miss loss chips off the
	// defense. Wider margins chip less, down to a floor of 1.
	MaxChallengeWeaken = 5
)

type Service interface {
	// RegisterLocation adds a gym to the map, initially uncontrolled.
	RegisterLocation(ctx context.Context, placeID, name string) (*domain.GymLocation, error)

	GetLocation(ctx context.Context, locationID string) (*domain.GymLocation, error)
	ListLocations(ctx context.Context) ([]domain.GymLocation, error)

	// Claim takes an uncontrolled location for the caller's club.
	Claim(ctx context.Context, userID, locationID string) (*domain.GymLocation, error)

	// Challenge attacks a rival-held location. Wins transfer control;
	// losses still wear down the defense.
	Challenge(ctx context.Context, userID, locationID string) (*domain.BattleResult, error)

	// Defend joins the defender list of a location the caller's club
	// holds, strengthening its control.
	Defend(ctx context.Context, userID, locationID string) (*domain.GymLocation, error)
}

type service struct {
	repo  repository.Territory
	clubs repository.Club
	users repository.User
	bus   event.Bus
	rng   *rand.Rand
	now   func() time.Time
}

// NewService creates a new territory service. Tests pass a seeded rng.
func NewService(repo repository.Territory, clubs repository.Club, users repository.User, bus event.Bus, rng *rand.Rand, now func() time.Time) Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, clubs: clubs, users: users, bus: bus, rng: rng, now: now}
}

func (s *service) RegisterLocation(ctx context.Context, placeID, name string) (*domain.GymLocation, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if placeID == "" || name == "" {
		return nil, fmt.Errorf("%w: location needs a place id and name", domain.ErrInvalidChallenge)
	}

	now := s.now().UTC()
	loc := &domain.GymLocation{
		ID:        uuid.NewString(),
		PlaceID:   placeID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateLocation(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to register location: %w", err)
	}

	log.Info("Gym location registered", "location_id", loc.ID, "place_id", placeID, "name", name)
	return loc, nil
}

func (s *service) GetLocation(ctx context.Context, locationID string) (*domain.GymLocation, error) {
	return s.repo.GetLocation(ctx, locationID)
}

func (s *service) ListLocations(ctx context.Context) ([]domain.GymLocation, error) {
	return s.repo.ListLocations(ctx)
}

func (s *service) Claim(ctx context.Context, userID, locationID string) (*domain.GymLocation, error) {
	log := logger.FromContext(ctx)

	user, club, err := s.userAndClub(ctx, userID)
	if err != nil {
		return nil, err
	}

	strength := user.Level * StrengthPerLevel
	now := s.now().UTC()

	updated, err := s.repo.MutateLocation(ctx, locationID, func(loc *domain.GymLocation) error {
		if loc.IsControlled() {
			return domain.ErrAlreadyControlled
		}
		loc.ControllingClubID = &club.ID
		loc.ControlStrength = strength
		loc.Defenders = []domain.Defender{{UserID: userID, Level: user.Level}}
		loc.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Territory claimed", "location_id", locationID, "user_id", userID, "club_id", club.ID, "strength", strength)

	if s.bus != nil {
		evt := event.NewTerritoryEvent(domain.EventTypeTerritoryClaimed, locationID, userID, club.ID, strength)
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Territory claimed event publish failed", "error", err, "location_id", locationID)
		}
	}
	return updated, nil
}

// Challenge rolls attack against defense. The attacker's power scales
// with level; the defense is the location's accumulated control
// strength. Both sides get a random jitter so upsets stay possible.
func (s *service) Challenge(ctx context.Context, userID, locationID string) (*domain.BattleResult, error) {
	log := logger.FromContext(ctx)

	user, club, err := s.userAndClub(ctx, userID)
	if err != nil {
		return nil, err
	}

	attackPower := user.Level*StrengthPerLevel + s.rng.Intn(BattleJitter)
	defenseJitter := s.rng.Intn(BattleJitter)
	now := s.now().UTC()

	var battle domain.BattleResult
	_, err = s.repo.MutateLocation(ctx, locationID, func(loc *domain.GymLocation) error {
		if !loc.IsControlled() {
			return domain.ErrNotControlled
		}
		if *loc.ControllingClubID == club.ID {
			return domain.ErrOwnClub
		}

		defensePower := loc.ControlStrength + defenseJitter
		battle = domain.BattleResult{
			LocationID:     locationID,
			AttackerID:     userID,
			AttackerClubID: club.ID,
			DefenderClubID: *loc.ControllingClubID,
			AttackPower:    attackPower,
			DefensePower:   defensePower,
			AttackerWon:    attackPower > defensePower,
			ResolvedAt:     now,
		}

		if battle.AttackerWon {
			loc.ControllingClubID = &battle.AttackerClubID
			loc.ControlStrength = user.Level * StrengthPerLevel
			loc.Defenders = []domain.Defender{{UserID: userID, Level: user.Level}}
		} else {
			// A failed assault still chips away at the defense; the
			// closer the attacker came, the bigger the chip.
			margin := defensePower - attackPower
			weaken := MaxChallengeWeaken - margin/StrengthPerLevel
			if weaken < 1 {
				weaken = 1
			}
			loc.ControlStrength -= weaken
			if loc.ControlStrength < 1 {
				loc.ControlStrength = 1
			}
		}
		battle.ControlStrength = loc.ControlStrength
		loc.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordStandings(ctx, battle)

	log.Info("Territory battle resolved",
		"location_id", locationID,
		"attacker_id", userID,
		"attacker_won", battle.AttackerWon,
		"attack_power", battle.AttackPower,
		"defense_power", battle.DefensePower)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewTerritoryBattleEvent(battle)); err != nil {
			log.Warn("Territory battle event publish failed", "error", err, "location_id", locationID)
		}
	}
	return &battle, nil
}

func (s *service) Defend(ctx context.Context, userID, locationID string) (*domain.GymLocation, error) {
	log := logger.FromContext(ctx)

	user, club, err := s.userAndClub(ctx, userID)
	if err != nil {
		return nil, err
	}

	bonus := user.Level * DefendStrengthPerLevel
	now := s.now().UTC()

	updated, err := s.repo.MutateLocation(ctx, locationID, func(loc *domain.GymLocation) error {
		if !loc.IsControlled() {
			return domain.ErrNotControlled
		}
		if *loc.ControllingClubID != club.ID {
			return domain.ErrNotController
		}
		if loc.HasDefender(userID) {
			return domain.ErrAlreadyDefending
		}
		if len(loc.Defenders) >= domain.MaxDefenders {
			return domain.ErrDefendersFull
		}

		loc.Defenders = append(loc.Defenders, domain.Defender{UserID: userID, Level: user.Level})
		loc.ControlStrength += bonus
		loc.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Territory defended", "location_id", locationID, "user_id", userID, "strength", updated.ControlStrength)

	if s.bus != nil {
		evt := event.NewTerritoryEvent(domain.EventTypeTerritoryDefended, locationID, userID, club.ID, updated.ControlStrength)
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Territory defended event publish failed", "error", err, "location_id", locationID)
		}
	}
	return updated, nil
}

func (s *service) userAndClub(ctx context.Context, userID string) (*domain.UserProgress, *domain.Club, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	club, err := s.clubs.GetClubByMember(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, domain.ErrNotInClub
		}
		return nil, nil, err
	}
	return user, club, nil
}

// recordStandings updates win/loss tallies on both clubs. Standings are
// cosmetic, so failures are logged and swallowed.
func (s *service) recordStandings(ctx context.Context, battle domain.BattleResult) {
	log := logger.FromContext(ctx)

	apply := func(clubID string, won bool) {
		if _, err := s.clubs.MutateClub(ctx, clubID, func(c *domain.Club) error {
			if won {
				c.Wins++
			} else {
				c.Losses++
			}
			return nil
		}); err != nil {
			log.Warn("Failed to update club standings", "error", err, "club_id", clubID)
		}
	}

	apply(battle.AttackerClubID, battle.AttackerWon)
	apply(battle.DefenderClubID, !battle.AttackerWon)
}
