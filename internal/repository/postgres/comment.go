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

// CommentRepository implements repositories.CommentRepository on
// postgres.
type CommentRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCommentRepository(pool *pgxpool.Pool, logger *slog.Logger) repositories.CommentRepository {
	return &CommentRepository{pool: pool, logger: logger}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	const query = `
		INSERT INTO comments (card_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, comment.CardID, comment.UserID, comment.Content).Scan(&comment.ID)
	return classify("create comment", err)
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	const query = `
		SELECT id, card_id, user_id, content
		FROM comments
		WHERE id = $1`

	var comment models.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(&comment.ID, &comment.CardID, &comment.UserID, &comment.Content)
	if err != nil {
		return nil, classify("get comment by id", err)
	}
	return &comment, nil
}

func (r *CommentRepository) GetWithOwnerByID(ctx context.Context, id int64) (*models.CommentWithOwner, error) {
	// Two-hop join resolves the transitive owner in one query.
	const query = `
		SELECT cm.id, cm.card_id, cm.user_id, cm.content, col.user_id
		FROM comments cm
		JOIN cards c ON c.id = cm.card_id
		JOIN columns col ON col.id = c.column_id
		WHERE cm.id = $1`

	var comment models.CommentWithOwner
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.CardID,
		&comment.UserID,
		&comment.Content,
		&comment.ColumnOwnerID,
	)
	if err != nil {
		return nil, classify("get comment with owner", err)
	}
	return &comment, nil
}

func (r *CommentRepository) ListByCardID(ctx context.Context, cardID int64) ([]models.Comment, error) {
	const query = `
		SELECT id, card_id, user_id, content
		FROM comments
		WHERE card_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, cardID)
	if err != nil {
		return nil, classify("list comments by card", err)
	}

	comments, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Comment])
	if err != nil {
		return nil, classify("list comments by card", err)
	}
	return comments, nil
}

func (r *CommentRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Comment, error) {
	const query = `
		SELECT id, card_id, user_id, content
		FROM comments
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, classify("list comments by user", err)
	}

	comments, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Comment])
	if err != nil {
		return nil, classify("list comments by user", err)
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM comments WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classify("delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete comment: %w", domain.ErrNotFound)
	}
	return nil
}
