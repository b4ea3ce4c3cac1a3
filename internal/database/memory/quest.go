package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// QuestRepository is an in-memory repository.Quest implementation.
type QuestRepository struct {
	mu     sync.Mutex
	quests map[string]map[string]*domain.Quest // userID -> questID -> quest
}

// NewQuestRepository creates an empty in-memory quest repository.
func NewQuestRepository() *QuestRepository {
	return &QuestRepository{quests: make(map[string]map[string]*domain.Quest)}
}

func (r *QuestRepository) CreateQuest(ctx context.Context, quest *domain.Quest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.quests[quest.UserID] == nil {
		r.quests[quest.UserID] = make(map[string]*domain.Quest)
	}
	r.quests[quest.UserID][quest.ID] = clone(quest)
	return nil
}

func (r *QuestRepository) GetQuest(ctx context.Context, userID, questID string) (*domain.Quest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quests[userID][questID]
	if !ok {
		return nil, domain.ErrQuestNotFound
	}
	return clone(q), nil
}

func (r *QuestRepository) GetUserQuests(ctx context.Context, userID string) ([]domain.Quest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Quest, 0, len(r.quests[userID]))
	for _, q := range r.quests[userID] {
		out = append(out, *clone(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *QuestRepository) MutateQuest(ctx context.Context, userID, questID string, fn func(*domain.Quest) error) (*domain.Quest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.quests[userID][questID]
	if !ok {
		return nil, domain.ErrQuestNotFound
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}

	r.quests[userID][questID] = next
	return clone(next), nil
}

func (r *QuestRepository) DeleteQuestsByKind(ctx context.Context, userID string, kind domain.QuestKind) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, q := range r.quests[userID] {
		if q.Kind == kind {
			delete(r.quests[userID], id)
			deleted++
		}
	}
	return deleted, nil
}
