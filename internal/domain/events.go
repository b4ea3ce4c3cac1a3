package domain

// EventType identifies a game event on the in-process bus.
type EventType string

// Game event types. The workout.recorded event carries the post-ledger
// snapshot all trackers consume; the rest are emitted by the trackers
// themselves and feed the activity recorder.
const (
	EventTypeWorkoutRecorded EventType = "workout.recorded"
	EventTypeLevelUp         EventType = "progression.level_up"

	EventTypeQuestCompleted EventType = "quest.completed"
	EventTypeQuestClaimed   EventType = "quest.claimed"
	EventTypeQuestRefreshed EventType = "quest.refreshed"

	EventTypeAchievementUnlocked EventType = "achievement.unlocked"

	EventTypeDuelCreated  EventType = "duel.created"
	EventTypeDuelAccepted EventType = "duel.accepted"
	EventTypeDuelDeclined EventType = "duel.declined"
	EventTypeDuelScored   EventType = "duel.scored"
	EventTypeDuelResolved EventType = "duel.resolved"

	EventTypeRaidDamage   EventType = "raid.damage"
	EventTypeRaidDefeated EventType = "raid.defeated"

	EventTypePartyCreated     EventType = "party.created"
	EventTypePartyJoined      EventType = "party.joined"
	EventTypePartyLeft        EventType = "party.left"
	EventTypePartyKicked      EventType = "party.kicked"
	EventTypePartyDisbanded   EventType = "party.disbanded"
	EventTypePartyOwnerChange EventType = "party.ownership_transferred"

	EventTypeTerritoryClaimed  EventType = "territory.claimed"
	EventTypeTerritoryBattle   EventType = "territory.battle"
	EventTypeTerritoryDefended EventType = "territory.defended"
)
