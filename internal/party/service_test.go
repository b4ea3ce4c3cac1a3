package party

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

type partyFixture struct {
	svc   Service
	users *memory.UserRepository
	repo  *memory.PartyRepository
	bus   *event.MemoryBus
	clock *time.Time
}

func newPartyFixture(t *testing.T) *partyFixture {
	t.Helper()

	users := memory.NewUserRepository()
	repo := memory.NewPartyRepository(users)
	bus := event.NewMemoryBus()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &start
	rng := rand.New(rand.NewSource(42)) //nolint:gosec

	svc := NewService(repo, bus, rng, func() time.Time { return *clock })
	return &partyFixture{svc: svc, users: users, repo: repo, bus: bus, clock: clock}
}

func (f *partyFixture) addUser(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.users.CreateUser(context.Background(), domain.NewUserProgress(id, id+"-name", *f.clock)))
}

func (f *partyFixture) user(t *testing.T, id string) *domain.UserProgress {
	t.Helper()
	u, err := f.users.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *partyFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestCreateParty(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")

	party, err := f.svc.CreateParty(context.Background(), "owner", "Morning Crew")
	require.NoError(t, err)

	assert.Equal(t, "Morning Crew", party.Name)
	assert.Len(t, party.InviteCode, InviteCodeLength)
	assert.Equal(t, "owner", party.OwnerID)
	require.Len(t, party.Members, 1)
	assert.Equal(t, domain.PartyRoleOwner, party.Members[0].Role)
	assert.True(t, party.IsActive)

	u := f.user(t, "owner")
	require.NotNil(t, u.PartyID)
	assert.Equal(t, party.ID, *u.PartyID)
	require.NotNil(t, u.PartyRole)
	assert.Equal(t, domain.PartyRoleOwner, *u.PartyRole)
}

func TestCreateParty_Validation(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	ctx := context.Background()

	_, err := f.svc.CreateParty(ctx, "owner", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidPartyName)

	_, err = f.svc.CreateParty(ctx, "ghost", "Morning Crew")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)

	// Already in a party: the second create rolls back entirely.
	second, err := f.svc.CreateParty(ctx, "owner", "Evening Crew")
	assert.ErrorIs(t, err, domain.ErrAlreadyInParty)
	assert.Nil(t, second)
}

func TestJoinParty(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "joiner")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)

	joined, err := f.svc.JoinParty(ctx, "joiner", party.InviteCode)
	require.NoError(t, err)
	require.Len(t, joined.Members, 2)
	assert.Equal(t, domain.PartyRoleMember, joined.Members[1].Role)

	u := f.user(t, "joiner")
	require.NotNil(t, u.PartyID)
	assert.Equal(t, party.ID, *u.PartyID)
}

func TestJoinParty_Errors(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "joiner")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)

	_, err = f.svc.JoinParty(ctx, "joiner", "xy")
	assert.ErrorIs(t, err, domain.ErrInvalidInviteCode)

	_, err = f.svc.JoinParty(ctx, "joiner", "ZZZZZZ")
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)

	_, err = f.svc.JoinParty(ctx, "joiner", party.InviteCode)
	require.NoError(t, err)
	_, err = f.svc.JoinParty(ctx, "joiner", party.InviteCode)
	assert.ErrorIs(t, err, domain.ErrAlreadyInParty)
}

func TestJoinParty_Full(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)

	for i := 1; i < domain.MaxPartyMembers; i++ {
		id := string(rune('a' + i))
		f.addUser(t, id)
		_, err := f.svc.JoinParty(ctx, id, party.InviteCode)
		require.NoError(t, err)
	}

	f.addUser(t, "late")
	_, err = f.svc.JoinParty(ctx, "late", party.InviteCode)
	assert.ErrorIs(t, err, domain.ErrPartyFull)

	u := f.user(t, "late")
	assert.Nil(t, u.PartyID)
}

func TestLeaveParty_Member(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "member")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)
	_, err = f.svc.JoinParty(ctx, "member", party.InviteCode)
	require.NoError(t, err)

	require.NoError(t, f.svc.LeaveParty(ctx, "member"))

	updated, err := f.svc.GetParty(ctx, party.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 1)
	assert.Equal(t, "owner", updated.OwnerID)
	assert.True(t, updated.IsActive)

	assert.Nil(t, f.user(t, "member").PartyID)
}

func TestLeaveParty_OwnerSuccession(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "first")
	f.addUser(t, "second")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)

	_, err = f.svc.JoinParty(ctx, "first", party.InviteCode)
	require.NoError(t, err)
	f.advance(time.Minute)
	_, err = f.svc.JoinParty(ctx, "second", party.InviteCode)
	require.NoError(t, err)

	var ownerChanges []event.Event
	f.bus.Subscribe(event.Type(domain.EventTypePartyOwnerChange), func(ctx context.Context, evt event.Event) error {
		ownerChanges = append(ownerChanges, evt)
		return nil
	})

	require.NoError(t, f.svc.LeaveParty(ctx, "owner"))

	updated, err := f.svc.GetParty(ctx, party.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", updated.OwnerID)
	assert.True(t, updated.IsActive)

	u := f.user(t, "first")
	require.NotNil(t, u.PartyRole)
	assert.Equal(t, domain.PartyRoleOwner, *u.PartyRole)

	require.Len(t, ownerChanges, 1)
	payload, err := event.DecodePayload[event.PartyPayloadV1](ownerChanges[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, "first", payload.NewOwnerID)
}

func TestLeaveParty_LastMemberDisbands(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)

	require.NoError(t, f.svc.LeaveParty(ctx, "owner"))

	updated, err := f.svc.GetParty(ctx, party.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// The invite code is freed for reuse.
	taken, err := f.repo.IsInviteCodeTaken(ctx, party.InviteCode)
	require.NoError(t, err)
	assert.False(t, taken)

	err = f.svc.LeaveParty(ctx, "owner")
	assert.ErrorIs(t, err, domain.ErrNotInParty)
}

func TestLeaveParty_NotInParty(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "loner")

	err := f.svc.LeaveParty(context.Background(), "loner")
	assert.ErrorIs(t, err, domain.ErrNotInParty)
}

func TestKickMember(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "member")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)
	_, err = f.svc.JoinParty(ctx, "member", party.InviteCode)
	require.NoError(t, err)

	kicked, err := f.svc.KickMember(ctx, "owner", "member")
	require.NoError(t, err)
	assert.Len(t, kicked.Members, 1)
	assert.Nil(t, f.user(t, "member").PartyID)
}

func TestKickMember_Errors(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "member")
	f.addUser(t, "outsider")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)
	_, err = f.svc.JoinParty(ctx, "member", party.InviteCode)
	require.NoError(t, err)

	_, err = f.svc.KickMember(ctx, "owner", "owner")
	assert.ErrorIs(t, err, domain.ErrKickSelf)

	_, err = f.svc.KickMember(ctx, "member", "owner")
	assert.ErrorIs(t, err, domain.ErrNotPartyOwner)

	_, err = f.svc.KickMember(ctx, "owner", "outsider")
	assert.ErrorIs(t, err, domain.ErrNotInParty)
}

func TestDisbandParty(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "member")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)
	_, err = f.svc.JoinParty(ctx, "member", party.InviteCode)
	require.NoError(t, err)

	require.NoError(t, f.svc.DisbandParty(ctx, "owner"))

	updated, err := f.svc.GetParty(ctx, party.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	assert.Nil(t, f.user(t, "owner").PartyID)
	assert.Nil(t, f.user(t, "member").PartyID)

	_, err = f.svc.GetPartyForUser(ctx, "member")
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)
}

func TestDisbandParty_MemberForbidden(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "member")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)
	_, err = f.svc.JoinParty(ctx, "member", party.InviteCode)
	require.NoError(t, err)

	err = f.svc.DisbandParty(ctx, "member")
	assert.ErrorIs(t, err, domain.ErrNotPartyOwner)
}

func TestRegenerateInviteCode(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	f.addUser(t, "member")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)
	oldCode := party.InviteCode
	_, err = f.svc.JoinParty(ctx, "member", oldCode)
	require.NoError(t, err)

	updated, err := f.svc.RegenerateInviteCode(ctx, "owner")
	require.NoError(t, err)
	assert.NotEqual(t, oldCode, updated.InviteCode)
	assert.Len(t, updated.InviteCode, InviteCodeLength)

	_, err = f.svc.RegenerateInviteCode(ctx, "member")
	assert.ErrorIs(t, err, domain.ErrNotPartyOwner)

	// The old code no longer resolves.
	f.addUser(t, "late")
	_, err = f.svc.JoinParty(ctx, "late", oldCode)
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)
}

func TestGetPartyForUser(t *testing.T) {
	f := newPartyFixture(t)
	f.addUser(t, "owner")
	ctx := context.Background()

	party, err := f.svc.CreateParty(ctx, "owner", "Morning Crew")
	require.NoError(t, err)

	found, err := f.svc.GetPartyForUser(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, party.ID, found.ID)
}
