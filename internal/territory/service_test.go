package territory

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironquest/IronQuest_Go/internal/database/memory"
	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/event"
)

type territoryFixture struct {
	svc   Service
	repo  *memory.TerritoryRepository
	clubs *memory.ClubRepository
	users *memory.UserRepository
	bus   *event.MemoryBus
}

func newTerritoryFixture(t *testing.T) *territoryFixture {
	t.Helper()

	users := memory.NewUserRepository()
	clubs := memory.NewClubRepository()
	repo := memory.NewTerritoryRepository()
	bus := event.NewMemoryBus()
	rng := rand.New(rand.NewSource(7)) //nolint:gosec
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	return &territoryFixture{
		svc:   NewService(repo, clubs, users, bus, rng, clock),
		repo:  repo,
		clubs: clubs,
		users: users,
		bus:   bus,
	}
}

// addMember creates a user at the given level inside the given club.
func (f *territoryFixture) addMember(t *testing.T, userID, clubID string, level int) {
	t.Helper()
	ctx := context.Background()

	u := domain.NewUserProgress(userID, userID+"-name", time.Now())
	u.Level = level
	require.NoError(t, f.users.CreateUser(ctx, u))

	if clubID == "" {
		return
	}
	if _, err := f.clubs.GetClub(ctx, clubID); err != nil {
		require.NoError(t, f.clubs.CreateClub(ctx, &domain.Club{ID: clubID, Name: clubID, Tag: "CLB"}))
	}
	_, err := f.clubs.MutateClub(ctx, clubID, func(c *domain.Club) error {
		c.Members = append(c.Members, userID)
		return nil
	})
	require.NoError(t, err)
}

func (f *territoryFixture) location(t *testing.T) *domain.GymLocation {
	t.Helper()
	loc, err := f.svc.RegisterLocation(context.Background(), "place-1", "Downtown Gym")
	require.NoError(t, err)
	return loc
}

func TestRegisterLocation(t *testing.T) {
	f := newTerritoryFixture(t)

	loc := f.location(t)
	assert.False(t, loc.IsControlled())
	assert.Equal(t, 0, loc.ControlStrength)

	_, err := f.svc.RegisterLocation(context.Background(), "", "Gym")
	assert.ErrorIs(t, err, domain.ErrInvalidChallenge)
}

func TestClaim(t *testing.T) {
	f := newTerritoryFixture(t)
	f.addMember(t, "u1", "club-a", 4)
	ctx := context.Background()
	loc := f.location(t)

	claimed, err := f.svc.Claim(ctx, "u1", loc.ID)
	require.NoError(t, err)

	require.NotNil(t, claimed.ControllingClubID)
	assert.Equal(t, "club-a", *claimed.ControllingClubID)
	assert.Equal(t, 4*StrengthPerLevel, claimed.ControlStrength)
	assert.Equal(t, []domain.Defender{{UserID: "u1", Level: 4}}, claimed.Defenders)
}

func TestClaim_Errors(t *testing.T) {
	f := newTerritoryFixture(t)
	f.addMember(t, "u1", "club-a", 4)
	f.addMember(t, "u2", "club-b", 3)
	f.addMember(t, "loner", "", 5)
	ctx := context.Background()
	loc := f.location(t)

	_, err := f.svc.Claim(ctx, "loner", loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotInClub)

	_, err = f.svc.Claim(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	_, err = f.svc.Claim(ctx, "u1", loc.ID)
	require.NoError(t, err)

	// A held location cannot be claimed, only challenged.
	_, err = f.svc.Claim(ctx, "u2", loc.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyControlled)
}

func TestChallenge_GuaranteedWin(t *testing.T) {
	f := newTerritoryFixture(t)
	// Attack is at least level*10 = 100; defense at most 10+19. The
	// attacker wins regardless of the rolls.
	f.addMember(t, "holder", "club-a", 1)
	f.addMember(t, "attacker", "club-b", 10)
	ctx := context.Background()
	loc := f.location(t)

	_, err := f.svc.Claim(ctx, "holder", loc.ID)
	require.NoError(t, err)

	battle, err := f.svc.Challenge(ctx, "attacker", loc.ID)
	require.NoError(t, err)

	assert.True(t, battle.AttackerWon)
	assert.Equal(t, "club-b", battle.AttackerClubID)
	assert.Equal(t, "club-a", battle.DefenderClubID)
	assert.Equal(t, 10*StrengthPerLevel, battle.ControlStrength)

	updated, err := f.svc.GetLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "club-b", *updated.ControllingClubID)
	assert.Equal(t, []domain.Defender{{UserID: "attacker", Level: 10}}, updated.Defenders)

	winner, err := f.clubs.GetClub(ctx, "club-b")
	require.NoError(t, err)
	assert.Equal(t, 1, winner.Wins)
	loser, err := f.clubs.GetClub(ctx, "club-a")
	require.NoError(t, err)
	assert.Equal(t, 1, loser.Losses)
}

func TestChallenge_GuaranteedLossWeakensDefense(t *testing.T) {
	f := newTerritoryFixture(t)
	// Attack at most 10+19 = 29; defense at least level*10 = 100. The
	// attacker always loses but still chips the control strength.
	f.addMember(t, "holder", "club-a", 10)
	f.addMember(t, "attacker", "club-b", 1)
	ctx := context.Background()
	loc := f.location(t)

	_, err := f.svc.Claim(ctx, "holder", loc.ID)
	require.NoError(t, err)

	battle, err := f.svc.Challenge(ctx, "attacker", loc.ID)
	require.NoError(t, err)

	assert.False(t, battle.AttackerWon)
	assert.Less(t, battle.ControlStrength, 10*StrengthPerLevel)
	assert.GreaterOrEqual(t, battle.ControlStrength, 1)

	updated, err := f.svc.GetLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "club-a", *updated.ControllingClubID)

	attackerClub, err := f.clubs.GetClub(ctx, "club-b")
	require.NoError(t, err)
	assert.Equal(t, 1, attackerClub.Losses)
}

func TestChallenge_NearMissChipsHarder(t *testing.T) {
	ctx := context.Background()

	chipAfterLossBy := func(t *testing.T, attackerLevel int) int {
		f := newTerritoryFixture(t)
		f.addMember(t, "holder", "club-a", 10)
		f.addMember(t, "attacker", "club-b", attackerLevel)
		loc := f.location(t)

		_, err := f.svc.Claim(ctx, "holder", loc.ID)
		require.NoError(t, err)

		battle, err := f.svc.Challenge(ctx, "attacker", loc.ID)
		require.NoError(t, err)
		require.False(t, battle.AttackerWon)
		return 10*StrengthPerLevel - battle.ControlStrength
	}

	// A level-8 attacker loses by at most 39 against strength 100, a
	// level-1 attacker by at least 71. Whatever the rolls, the near
	// miss must wear the defense down harder than the blowout.
	nearMiss := chipAfterLossBy(t, 8)
	blowout := chipAfterLossBy(t, 1)

	assert.Greater(t, nearMiss, blowout)
	assert.Equal(t, 1, blowout)
}

func TestChallenge_Errors(t *testing.T) {
	f := newTerritoryFixture(t)
	f.addMember(t, "holder", "club-a", 5)
	f.addMember(t, "teammate", "club-a", 5)
	ctx := context.Background()
	loc := f.location(t)

	// Uncontrolled locations are claimed, not challenged.
	_, err := f.svc.Challenge(ctx, "holder", loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotControlled)

	_, err = f.svc.Claim(ctx, "holder", loc.ID)
	require.NoError(t, err)

	_, err = f.svc.Challenge(ctx, "teammate", loc.ID)
	assert.ErrorIs(t, err, domain.ErrOwnClub)
}

func TestChallenge_PublishesBattleEvent(t *testing.T) {
	f := newTerritoryFixture(t)
	f.addMember(t, "holder", "club-a", 1)
	f.addMember(t, "attacker", "club-b", 10)
	ctx := context.Background()
	loc := f.location(t)

	_, err := f.svc.Claim(ctx, "holder", loc.ID)
	require.NoError(t, err)

	var battles []event.Event
	f.bus.Subscribe(event.Type(domain.EventTypeTerritoryBattle), func(ctx context.Context, evt event.Event) error {
		battles = append(battles, evt)
		return nil
	})

	_, err = f.svc.Challenge(ctx, "attacker", loc.ID)
	require.NoError(t, err)

	require.Len(t, battles, 1)
	payload, err := event.DecodePayload[event.TerritoryBattlePayloadV1](battles[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, "attacker", payload.Battle.AttackerID)
	assert.True(t, payload.Battle.AttackerWon)
}

func TestDefend(t *testing.T) {
	f := newTerritoryFixture(t)
	f.addMember(t, "holder", "club-a", 4)
	f.addMember(t, "guard", "club-a", 6)
	ctx := context.Background()
	loc := f.location(t)

	_, err := f.svc.Claim(ctx, "holder", loc.ID)
	require.NoError(t, err)

	defended, err := f.svc.Defend(ctx, "guard", loc.ID)
	require.NoError(t, err)

	assert.Equal(t, 4*StrengthPerLevel+6*DefendStrengthPerLevel, defended.ControlStrength)
	assert.True(t, defended.HasDefender("guard"))

	_, err = f.svc.Defend(ctx, "guard", loc.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyDefending)
}

func TestDefend_Errors(t *testing.T) {
	f := newTerritoryFixture(t)
	f.addMember(t, "holder", "club-a", 4)
	f.addMember(t, "rival", "club-b", 4)
	ctx := context.Background()
	loc := f.location(t)

	_, err := f.svc.Defend(ctx, "holder", loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotControlled)

	_, err = f.svc.Claim(ctx, "holder", loc.ID)
	require.NoError(t, err)

	_, err = f.svc.Defend(ctx, "rival", loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotController)
}

func TestDefend_CapacityCap(t *testing.T) {
	f := newTerritoryFixture(t)
	f.addMember(t, "holder", "club-a", 4)
	ctx := context.Background()
	loc := f.location(t)

	_, err := f.svc.Claim(ctx, "holder", loc.ID)
	require.NoError(t, err)

	// The claimer occupies one defender slot already.
	for i := 1; i < domain.MaxDefenders; i++ {
		id := "guard" + string(rune('0'+i))
		f.addMember(t, id, "club-a", 2)
		_, err := f.svc.Defend(ctx, id, loc.ID)
		require.NoError(t, err)
	}

	f.addMember(t, "late", "club-a", 2)
	_, err = f.svc.Defend(ctx, "late", loc.ID)
	assert.ErrorIs(t, err, domain.ErrDefendersFull)
}
