package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/database/memory"
	"github.com/ironquest/IronQuest_Go/internal/database/postgres"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User        repository.User
	Quest       repository.Quest
	Achievement repository.Achievement
	Duel        repository.Duel
	Raid        repository.Raid
	Party       repository.Party
	Club        repository.Club
	Territory   repository.Territory
	Activity    repository.Activity
}

// InitializePostgresRepositories creates repository implementations backed
// by the PostgreSQL pool.
func InitializePostgresRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        postgres.NewUserRepository(dbPool),
		Quest:       postgres.NewQuestRepository(dbPool),
		Achievement: postgres.NewAchievementRepository(dbPool),
		Duel:        postgres.NewDuelRepository(dbPool),
		Raid:        postgres.NewRaidRepository(dbPool),
		Party:       postgres.NewPartyRepository(dbPool),
		Club:        postgres.NewClubRepository(dbPool),
		Territory:   postgres.NewTerritoryRepository(dbPool),
		Activity:    postgres.NewActivityRepository(dbPool),
	}
}

// InitializeMemoryRepositories creates in-memory repository implementations,
// used for development and tests. The party repository shares the user
// repository so its transactional member updates see the same records.
func InitializeMemoryRepositories() *Repositories {
	users := memory.NewUserRepository()
	return &Repositories{
		User:        users,
		Quest:       memory.NewQuestRepository(),
		Achievement: memory.NewAchievementRepository(),
		Duel:        memory.NewDuelRepository(),
		Raid:        memory.NewRaidRepository(),
		Party:       memory.NewPartyRepository(users),
		Club:        memory.NewClubRepository(),
		Territory:   memory.NewTerritoryRepository(),
		Activity:    memory.NewActivityRepository(),
	}
}
