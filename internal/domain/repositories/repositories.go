// Package repositories defines the persistence interfaces consumed by
// services and the authorization resolver. Implementations classify
// their own errors onto the domain sentinels before returning.
package repositories

import (
	"context"

	"taskboard/internal/domain/models"
)

type UserRepository interface {
	// Create inserts the user and fills in the assigned ID. A duplicate
	// email surfaces as domain.ErrConflict.
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type ColumnRepository interface {
	Create(ctx context.Context, column *models.Column) error
	GetByID(ctx context.Context, id int64) (*models.Column, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Column, error)
	Update(ctx context.Context, column *models.Column) error
	Delete(ctx context.Context, id int64) error
}

type CardRepository interface {
	// Create inserts the card. A column_id referencing no column
	// surfaces as domain.ErrNotFound, not a generic failure.
	Create(ctx context.Context, card *models.Card) error
	// GetWithOwnerByID fetches the card joined with its parent column's
	// owner in one query.
	GetWithOwnerByID(ctx context.Context, id int64) (*models.CardWithOwner, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Card, error)
	ListByColumnID(ctx context.Context, columnID int64) ([]models.Card, error)
	Update(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// GetWithOwnerByID fetches the comment joined through its card to
	// the column owner in one query.
	GetWithOwnerByID(ctx context.Context, id int64) (*models.CommentWithOwner, error)
	ListByCardID(ctx context.Context, cardID int64) ([]models.Comment, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Comment, error)
	Delete(ctx context.Context, id int64) error
}
