package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
)

// CardRepository implements repositories.CardRepository on postgres.
type CardRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCardRepository(pool *pgxpool.Pool, logger *slog.Logger) repositories.CardRepository {
	return &CardRepository{pool: pool, logger: logger}
}

func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	const query = `
		INSERT INTO cards (column_id, title, description, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	// A column_id with no matching column trips the FK constraint,
	// which classify reports as not-found.
	err := r.pool.QueryRow(ctx, query, card.ColumnID, card.Title, card.Description, card.Position).Scan(&card.ID)
	return classify("create card", err)
}

func (r *CardRepository) GetWithOwnerByID(ctx context.Context, id int64) (*models.CardWithOwner, error) {
	const query = `
		SELECT c.id, c.column_id, c.title, c.description, c.position, col.user_id
		FROM cards c
		JOIN columns col ON col.id = c.column_id
		WHERE c.id = $1`

	var card models.CardWithOwner
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.ColumnID,
		&card.Title,
		&card.Description,
		&card.Position,
		&card.ColumnOwnerID,
	)
	if err != nil {
		return nil, classify("get card with owner", err)
	}
	return &card, nil
}

func (r *CardRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Card, error) {
	const query = `
		SELECT c.id, c.column_id, c.title, c.description, c.position
		FROM cards c
		JOIN columns col ON col.id = c.column_id
		WHERE col.user_id = $1
		ORDER BY c.position, c.id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, classify("list cards by user", err)
	}

	cards, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Card])
	if err != nil {
		return nil, classify("list cards by user", err)
	}
	return cards, nil
}

func (r *CardRepository) ListByColumnID(ctx context.Context, columnID int64) ([]models.Card, error) {
	const query = `
		SELECT id, column_id, title, description, position
		FROM cards
		WHERE column_id = $1
		ORDER BY position, id`

	rows, err := r.pool.Query(ctx, query, columnID)
	if err != nil {
		return nil, classify("list cards by column", err)
	}

	cards, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Card])
	if err != nil {
		return nil, classify("list cards by column", err)
	}
	return cards, nil
}

func (r *CardRepository) Update(ctx context.Context, card *models.Card) error {
	const query = `
		UPDATE cards
		SET title = $2, description = $3, position = $4
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, card.ID, card.Title, card.Description, card.Position)
	if err != nil {
		return classify("update card", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update card: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM cards WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classify("delete card", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete card: %w", domain.ErrNotFound)
	}
	return nil
}
