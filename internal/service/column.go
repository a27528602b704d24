package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
)

// ColumnService manages board columns for their owning user.
type ColumnService struct {
	columns repositories.ColumnRepository
	cards   repositories.CardRepository
	logger  *slog.Logger
}

func NewColumnService(columns repositories.ColumnRepository, cards repositories.CardRepository, logger *slog.Logger) *ColumnService {
	return &ColumnService{columns: columns, cards: cards, logger: logger}
}

type CreateColumnRequest struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func (r CreateColumnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Position, validation.Required, validation.Min(1)),
	)
}

type UpdateColumnRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

func (r UpdateColumnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Position, validation.Min(1)),
	)
}

func (s *ColumnService) Create(ctx context.Context, userID int64, req *CreateColumnRequest) (*models.Column, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	column := &models.Column{
		UserID:   userID,
		Title:    req.Title,
		Position: req.Position,
	}
	if err := s.columns.Create(ctx, column); err != nil {
		return nil, err
	}

	s.logger.Info("column created", "id", column.ID, "user_id", userID)
	return column, nil
}

func (s *ColumnService) Get(ctx context.Context, id int64) (*models.Column, error) {
	return s.columns.GetByID(ctx, id)
}

func (s *ColumnService) ListByUser(ctx context.Context, userID int64) ([]models.Column, error) {
	return s.columns.ListByUserID(ctx, userID)
}

// ListCards returns the cards of an existing column; a missing column
// is reported rather than an empty list.
func (s *ColumnService) ListCards(ctx context.Context, columnID int64) ([]models.Card, error) {
	if _, err := s.columns.GetByID(ctx, columnID); err != nil {
		return nil, err
	}
	return s.cards.ListByColumnID(ctx, columnID)
}

func (s *ColumnService) Update(ctx context.Context, id int64, req *UpdateColumnRequest) (*models.Column, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	column, err := s.columns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		column.Title = *req.Title
	}
	if req.Position != nil {
		column.Position = *req.Position
	}

	if err := s.columns.Update(ctx, column); err != nil {
		return nil, err
	}

	s.logger.Info("column updated", "id", column.ID)
	return column, nil
}

func (s *ColumnService) Delete(ctx context.Context, id int64) error {
	if err := s.columns.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("column deleted", "id", id)
	return nil
}
