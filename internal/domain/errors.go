package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors
	ErrMsgInvalidWorkout     = "invalid workout"
	ErrMsgInvalidInviteCode  = "invalid invite code"
	ErrMsgInvalidPartyName   = "invalid party name"
	ErrMsgInvalidEquipSlot   = "invalid equipment slot"
	ErrMsgInvalidChallenge   = "invalid challenge type"

	// Not found errors
	ErrMsgUserNotFound        = "user not found"
	ErrMsgQuestNotFound       = "quest not found"
	ErrMsgAchievementNotFound = "achievement not found"
	ErrMsgDuelNotFound        = "duel not found"
	ErrMsgBossNotFound        = "raid boss not found"
	ErrMsgPartyNotFound       = "party not found"
	ErrMsgClubNotFound        = "club not found"
	ErrMsgLocationNotFound    = "location not found"
	ErrMsgItemNotFound        = "item not found"

	// Conflict errors
	ErrMsgAlreadyInParty     = "user is already in a party"
	ErrMsgNotInParty         = "user is not in a party"
	ErrMsgPartyFull          = "party is full"
	ErrMsgPartyDisbanded     = "party is disbanded"
	ErrMsgAlreadyMember      = "user is already a member"
	ErrMsgDuelResolved       = "duel is already resolved"
	ErrMsgDuelNotPending     = "duel is not pending"
	ErrMsgQuestCompleted     = "quest is already completed"
	ErrMsgQuestNotCompleted  = "quest is not completed"
	ErrMsgQuestClaimed       = "quest reward already claimed"
	ErrMsgAlreadyControlled  = "location is already controlled"
	ErrMsgNotControlled      = "location is not controlled"
	ErrMsgOwnClub            = "location is controlled by your own club"
	ErrMsgDefendersFull      = "defender list is full"
	ErrMsgAlreadyDefending   = "user is already defending"
	ErrMsgNotInClub          = "user is not in a club"
	ErrMsgBossDefeated       = "raid boss is already defeated"
	ErrMsgUsernameTaken      = "username is already taken"

	// Permission errors
	ErrMsgNotPartyOwner = "only the party owner may do that"
	ErrMsgNotController = "your club does not control this location"
	ErrMsgKickSelf      = "owner cannot kick themselves"

	// Internal errors
	ErrMsgCodeGeneration = "failed to generate a unique invite code"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Validation errors - rejected before any mutation
	ErrInvalidWorkout    = errors.New(ErrMsgInvalidWorkout)
	ErrInvalidInviteCode = errors.New(ErrMsgInvalidInviteCode)
	ErrInvalidPartyName  = errors.New(ErrMsgInvalidPartyName)
	ErrInvalidEquipSlot  = errors.New(ErrMsgInvalidEquipSlot)
	ErrInvalidChallenge  = errors.New(ErrMsgInvalidChallenge)

	// Not found errors
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrQuestNotFound       = errors.New(ErrMsgQuestNotFound)
	ErrAchievementNotFound = errors.New(ErrMsgAchievementNotFound)
	ErrDuelNotFound        = errors.New(ErrMsgDuelNotFound)
	ErrBossNotFound        = errors.New(ErrMsgBossNotFound)
	ErrPartyNotFound       = errors.New(ErrMsgPartyNotFound)
	ErrClubNotFound        = errors.New(ErrMsgClubNotFound)
	ErrLocationNotFound    = errors.New(ErrMsgLocationNotFound)
	ErrItemNotFound        = errors.New(ErrMsgItemNotFound)

	// Conflict errors - the loser of a race observes a fresh read and fails cleanly
	ErrAlreadyInParty    = errors.New(ErrMsgAlreadyInParty)
	ErrNotInParty        = errors.New(ErrMsgNotInParty)
	ErrPartyFull         = errors.New(ErrMsgPartyFull)
	ErrPartyDisbanded    = errors.New(ErrMsgPartyDisbanded)
	ErrAlreadyMember     = errors.New(ErrMsgAlreadyMember)
	ErrDuelResolved      = errors.New(ErrMsgDuelResolved)
	ErrDuelNotPending    = errors.New(ErrMsgDuelNotPending)
	ErrQuestCompleted    = errors.New(ErrMsgQuestCompleted)
	ErrQuestNotCompleted = errors.New(ErrMsgQuestNotCompleted)
	ErrQuestClaimed      = errors.New(ErrMsgQuestClaimed)
	ErrAlreadyControlled = errors.New(ErrMsgAlreadyControlled)
	ErrNotControlled     = errors.New(ErrMsgNotControlled)
	ErrOwnClub           = errors.New(ErrMsgOwnClub)
	ErrDefendersFull     = errors.New(ErrMsgDefendersFull)
	ErrAlreadyDefending  = errors.New(ErrMsgAlreadyDefending)
	ErrNotInClub         = errors.New(ErrMsgNotInClub)
	ErrBossDefeated      = errors.New(ErrMsgBossDefeated)
	ErrUsernameTaken     = errors.New(ErrMsgUsernameTaken)

	// Permission errors
	ErrNotPartyOwner = errors.New(ErrMsgNotPartyOwner)
	ErrNotController = errors.New(ErrMsgNotController)
	ErrKickSelf      = errors.New(ErrMsgKickSelf)

	// Internal errors
	ErrCodeGeneration = errors.New(ErrMsgCodeGeneration)
)

// IsValidation reports whether err belongs to the validation error kind.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidWorkout) ||
		errors.Is(err, ErrInvalidInviteCode) ||
		errors.Is(err, ErrInvalidPartyName) ||
		errors.Is(err, ErrInvalidEquipSlot) ||
		errors.Is(err, ErrInvalidChallenge)
}

// IsNotFound reports whether err belongs to the not-found error kind.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrQuestNotFound) ||
		errors.Is(err, ErrAchievementNotFound) ||
		errors.Is(err, ErrDuelNotFound) ||
		errors.Is(err, ErrBossNotFound) ||
		errors.Is(err, ErrPartyNotFound) ||
		errors.Is(err, ErrClubNotFound) ||
		errors.Is(err, ErrLocationNotFound) ||
		errors.Is(err, ErrItemNotFound)
}

// IsConflict reports whether err belongs to the conflict error kind.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyInParty) ||
		errors.Is(err, ErrNotInParty) ||
		errors.Is(err, ErrPartyFull) ||
		errors.Is(err, ErrPartyDisbanded) ||
		errors.Is(err, ErrAlreadyMember) ||
		errors.Is(err, ErrDuelResolved) ||
		errors.Is(err, ErrDuelNotPending) ||
		errors.Is(err, ErrQuestCompleted) ||
		errors.Is(err, ErrQuestNotCompleted) ||
		errors.Is(err, ErrQuestClaimed) ||
		errors.Is(err, ErrAlreadyControlled) ||
		errors.Is(err, ErrNotControlled) ||
		errors.Is(err, ErrOwnClub) ||
		errors.Is(err, ErrDefendersFull) ||
		errors.Is(err, ErrAlreadyDefending) ||
		errors.Is(err, ErrNotInClub) ||
		errors.Is(err, ErrBossDefeated) ||
		errors.Is(err, ErrUsernameTaken)
}

// IsPermission reports whether err belongs to the permission error kind.
func IsPermission(err error) bool {
	return errors.Is(err, ErrNotPartyOwner) ||
		errors.Is(err, ErrNotController) ||
		errors.Is(err, ErrKickSelf)
}
