package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Workout operation error messages
	ErrMsgRecordWorkoutFailed = "Failed to record workout"

	// User management error messages
	ErrMsgRegisterUserFailed   = "Failed to register user"
	ErrMsgGetUserFailed        = "Failed to get user"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"
	ErrMsgEquipItemFailed      = "Failed to equip item"
	ErrMsgUnequipItemFailed    = "Failed to unequip item"

	// Quest error messages
	ErrMsgGetQuestsFailed   = "Failed to retrieve quests"
	ErrMsgClaimRewardFailed = "Failed to claim quest reward"

	// Achievement error messages
	ErrMsgGetAchievementsFailed = "Failed to retrieve achievements"

	// Duel error messages
	ErrMsgCreateDuelFailed  = "Failed to create duel"
	ErrMsgAcceptDuelFailed  = "Failed to accept duel"
	ErrMsgDeclineDuelFailed = "Failed to decline duel"
	ErrMsgGetDuelFailed     = "Failed to get duel"
	ErrMsgGetDuelsFailed    = "Failed to get duels"

	// Raid error messages
	ErrMsgSpawnBossFailed = "Failed to spawn raid boss"
	ErrMsgGetBossFailed   = "Failed to get raid boss"
	ErrMsgNoActiveBoss    = "No active raid boss"

	// Party error messages
	ErrMsgCreatePartyFailed    = "Failed to create party"
	ErrMsgJoinPartyFailed      = "Failed to join party"
	ErrMsgLeavePartyFailed     = "Failed to leave party"
	ErrMsgKickMemberFailed     = "Failed to kick member"
	ErrMsgDisbandPartyFailed   = "Failed to disband party"
	ErrMsgRegenerateCodeFailed = "Failed to regenerate invite code"
	ErrMsgGetPartyFailed       = "Failed to get party"

	// Club error messages
	ErrMsgCreateClubFailed = "Failed to create club"
	ErrMsgJoinClubFailed   = "Failed to join club"
	ErrMsgLeaveClubFailed  = "Failed to leave club"
	ErrMsgGetClubFailed    = "Failed to get club"

	// Territory error messages
	ErrMsgRegisterLocationFailed = "Failed to register location"
	ErrMsgGetLocationFailed      = "Failed to get location"
	ErrMsgListLocationsFailed    = "Failed to list locations"
	ErrMsgClaimLocationFailed    = "Failed to claim location"
	ErrMsgChallengeFailed        = "Failed to challenge location"
	ErrMsgDefendFailed           = "Failed to defend location"

	// Activity error messages
	ErrMsgGetActivityFailed = "Failed to retrieve activity"

	// Place error messages
	ErrMsgGetPlaceFailed = "Failed to look up place"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgWorkoutRecorded    = "Workout recorded"
	MsgUserRegistered     = "User registered successfully"
	MsgQuestRewardClaimed = "Quest reward claimed successfully"
	MsgDuelCreated        = "Duel challenge sent!"
	MsgDuelAccepted       = "Duel accepted"
	MsgDuelDeclined       = "Duel declined"
	MsgBossSpawned        = "Raid boss spawned"
	MsgPartyCreated       = "Party created"
	MsgPartyJoined        = "Joined party"
	MsgPartyLeft          = "Left party"
	MsgMemberKicked       = "Member kicked"
	MsgPartyDisbanded     = "Party disbanded"
	MsgInviteRegenerated  = "Invite code regenerated"
	MsgClubCreated        = "Club created"
	MsgClubJoined         = "Joined club"
	MsgClubLeft           = "Left club"
	MsgLocationRegistered = "Location registered"
	MsgLocationClaimed    = "Location claimed"
	MsgLocationDefended   = "Defense reinforced"
)
