package repository

import (
	"context"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// Quest is the storage contract for per-user quest instances.
type Quest interface {
	CreateQuest(ctx context.Context, quest *domain.Quest) error
	GetQuest(ctx context.Context, userID, questID string) (*domain.Quest, error)
	GetUserQuests(ctx context.Context, userID string) ([]domain.Quest, error)

	MutateQuest(ctx context.Context, userID, questID string, fn func(*domain.Quest) error) (*domain.Quest, error)

	// DeleteQuestsByKind removes a user's quests of the given kind,
	// used by the daily/weekly refresh cycle. Milestone quests are
	// never deleted this way.
	DeleteQuestsByKind(ctx context.Context, userID string, kind domain.QuestKind) (int, error)
}
