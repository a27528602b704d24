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

// ColumnRepository implements repositories.ColumnRepository on
// postgres.
type ColumnRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewColumnRepository(pool *pgxpool.Pool, logger *slog.Logger) repositories.ColumnRepository {
	return &ColumnRepository{pool: pool, logger: logger}
}

func (r *ColumnRepository) Create(ctx context.Context, column *models.Column) error {
	const query = `
		INSERT INTO columns (user_id, title, position)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, column.UserID, column.Title, column.Position).Scan(&column.ID)
	return classify("create column", err)
}

func (r *ColumnRepository) GetByID(ctx context.Context, id int64) (*models.Column, error) {
	const query = `
		SELECT id, user_id, title, position
		FROM columns
		WHERE id = $1`

	var column models.Column
	err := r.pool.QueryRow(ctx, query, id).Scan(&column.ID, &column.UserID, &column.Title, &column.Position)
	if err != nil {
		return nil, classify("get column by id", err)
	}
	return &column, nil
}

func (r *ColumnRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Column, error) {
	const query = `
		SELECT id, user_id, title, position
		FROM columns
		WHERE user_id = $1
		ORDER BY position, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, classify("list columns by user", err)
	}

	columns, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Column])
	if err != nil {
		return nil, classify("list columns by user", err)
	}
	return columns, nil
}

func (r *ColumnRepository) Update(ctx context.Context, column *models.Column) error {
	const query = `
		UPDATE columns
		SET title = $2, position = $3
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, column.ID, column.Title, column.Position)
	if err != nil {
		return classify("update column", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update column: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *ColumnRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM columns WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classify("delete column", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete column: %w", domain.ErrNotFound)
	}
	return nil
}
