package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// QuestRepository implements repository.Quest for PostgreSQL.
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

const questSelectSQL = `SELECT data FROM quests WHERE user_id = $1 AND id = $2`
const questSelectForUpdateSQL = questSelectSQL + ` FOR UPDATE`
const questUpdateSQL = `
	UPDATE quests
	SET data = $3::jsonb
	WHERE user_id = $1 AND id = $2
`

func (r *QuestRepository) CreateQuest(ctx context.Context, quest *domain.Quest) error {
	data, err := marshalDoc(quest)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quests (user_id, id, kind, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, id) DO UPDATE SET data = EXCLUDED.data
	`
	if _, err := r.db.Exec(ctx, query, quest.UserID, quest.ID, string(quest.Kind), data); err != nil {
		return fmt.Errorf("failed to insert quest: %w", err)
	}
	return nil
}

func (r *QuestRepository) GetQuest(ctx context.Context, userID, questID string) (*domain.Quest, error) {
	return scanDoc[domain.Quest](r.db.QueryRow(ctx, questSelectSQL, userID, questID), domain.ErrQuestNotFound)
}

func (r *QuestRepository) GetUserQuests(ctx context.Context, userID string) ([]domain.Quest, error) {
	rows, err := r.db.Query(ctx, `SELECT data FROM quests WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user quests: %w", err)
	}
	defer rows.Close()

	quests := []domain.Quest{}
	for rows.Next() {
		q, err := scanDoc[domain.Quest](rows, domain.ErrQuestNotFound)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *q)
	}
	return quests, rows.Err()
}

func (r *QuestRepository) MutateQuest(ctx context.Context, userID, questID string, fn func(*domain.Quest) error) (*domain.Quest, error) {
	return mutateDoc(ctx, r.db, questSelectForUpdateSQL, questUpdateSQL, domain.ErrQuestNotFound, fn, userID, questID)
}

func (r *QuestRepository) DeleteQuestsByKind(ctx context.Context, userID string, kind domain.QuestKind) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM quests WHERE user_id = $1 AND kind = $2`, userID, string(kind))
	if err != nil {
		return 0, fmt.Errorf("failed to delete quests: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
