package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/domain"
	"github.com/ironquest/IronQuest_Go/internal/repository"
)

// PartyRepository implements repository.Party for PostgreSQL. Every
// membership transition runs through Transact so the party document
// and the denormalized user-side membership fields commit together.
type PartyRepository struct {
	db *pgxpool.Pool
}

// NewPartyRepository creates a new PartyRepository
func NewPartyRepository(db *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{db: db}
}

const partySelectSQL = `SELECT data FROM parties WHERE id = $1`
const partyUpdateSQL = `
	UPDATE parties
	SET data = $2::jsonb,
	    invite_code = $2::jsonb->>'invite_code',
	    is_active = ($2::jsonb->>'is_active')::boolean
	WHERE id = $1
`

func (r *PartyRepository) CreateParty(ctx context.Context, party *domain.Party) error {
	data, err := marshalDoc(party)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO parties (id, invite_code, is_active, data)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, party.ID, party.InviteCode, party.IsActive, data); err != nil {
		return fmt.Errorf("failed to insert party: %w", err)
	}
	return nil
}

func (r *PartyRepository) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	return scanDoc[domain.Party](r.db.QueryRow(ctx, partySelectSQL, partyID), domain.ErrPartyNotFound)
}

func (r *PartyRepository) GetPartyByInviteCode(ctx context.Context, code string) (*domain.Party, error) {
	query := `SELECT data FROM parties WHERE invite_code = $1 AND is_active`
	return scanDoc[domain.Party](r.db.QueryRow(ctx, query, code), domain.ErrPartyNotFound)
}

func (r *PartyRepository) GetPartyByMember(ctx context.Context, userID string) (*domain.Party, error) {
	query := `
		SELECT data FROM parties
		WHERE is_active
		  AND data->'members' @> jsonb_build_array(jsonb_build_object('user_id', $1::text))
		LIMIT 1
	`
	return scanDoc[domain.Party](r.db.QueryRow(ctx, query, userID), domain.ErrPartyNotFound)
}

func (r *PartyRepository) IsInviteCodeTaken(ctx context.Context, code string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM parties WHERE invite_code = $1 AND is_active)`, code).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check invite code: %w", err)
	}
	return taken, nil
}

func (r *PartyRepository) Transact(ctx context.Context, fn func(tx repository.PartyTx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(&partyTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitTransaction, err)
	}
	return nil
}

// partyTx implements repository.PartyTx on one pgx transaction. The
// FOR UPDATE reads serialize racing transitions on the same party.
type partyTx struct {
	tx pgx.Tx
}

func (t *partyTx) GetPartyForUpdate(ctx context.Context, partyID string) (*domain.Party, error) {
	return scanDoc[domain.Party](t.tx.QueryRow(ctx, partySelectSQL+` FOR UPDATE`, partyID), domain.ErrPartyNotFound)
}

func (t *partyTx) GetPartyByInviteCodeForUpdate(ctx context.Context, code string) (*domain.Party, error) {
	query := `SELECT data FROM parties WHERE invite_code = $1 AND is_active FOR UPDATE`
	return scanDoc[domain.Party](t.tx.QueryRow(ctx, query, code), domain.ErrPartyNotFound)
}

func (t *partyTx) SaveParty(ctx context.Context, party *domain.Party) error {
	data, err := marshalDoc(party)
	if err != nil {
		return err
	}
	if _, err := t.tx.Exec(ctx, partyUpdateSQL, party.ID, data); err != nil {
		return fmt.Errorf("failed to save party: %w", err)
	}
	return nil
}

func (t *partyTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return scanDoc[domain.UserProgress](t.tx.QueryRow(ctx, userSelectForUpdateSQL, userID), domain.ErrUserNotFound)
}

func (t *partyTx) SaveUser(ctx context.Context, user *domain.UserProgress) error {
	data, err := marshalDoc(user)
	if err != nil {
		return err
	}
	if _, err := t.tx.Exec(ctx, userUpdateSQL, user.ID, data); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
