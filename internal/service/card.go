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

// CardService manages cards inside columns.
type CardService struct {
	cards    repositories.CardRepository
	comments repositories.CommentRepository
	logger   *slog.Logger
}

func NewCardService(cards repositories.CardRepository, comments repositories.CommentRepository, logger *slog.Logger) *CardService {
	return &CardService{cards: cards, comments: comments, logger: logger}
}

type CreateCardRequest struct {
	ColumnID    int64   `json:"column_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Position    int     `json:"position"`
}

func (r CreateCardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ColumnID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Position, validation.Required, validation.Min(1)),
	)
}

type UpdateCardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
}

func (r UpdateCardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Position, validation.Min(1)),
	)
}

// Create inserts the card; a column_id referencing no column comes back
// from the repository as not-found, never a bare 500.
func (s *CardService) Create(ctx context.Context, req *CreateCardRequest) (*models.Card, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	card := &models.Card{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("card created", "id", card.ID, "column_id", card.ColumnID)
	return card, nil
}

func (s *CardService) ListByUser(ctx context.Context, userID int64) ([]models.Card, error) {
	return s.cards.ListByUserID(ctx, userID)
}

// ListComments returns the comments of an existing card.
func (s *CardService) ListComments(ctx context.Context, cardID int64) ([]models.Comment, error) {
	if _, err := s.cards.GetWithOwnerByID(ctx, cardID); err != nil {
		return nil, err
	}
	return s.comments.ListByCardID(ctx, cardID)
}

func (s *CardService) Update(ctx context.Context, id int64, req *UpdateCardRequest) (*models.Card, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.cards.GetWithOwnerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	card := existing.Card
	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = req.Description
	}
	if req.Position != nil {
		card.Position = *req.Position
	}

	if err := s.cards.Update(ctx, &card); err != nil {
		return nil, err
	}

	s.logger.Info("card updated", "id", card.ID)
	return &card, nil
}

func (s *CardService) Delete(ctx context.Context, id int64) error {
	if err := s.cards.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("card deleted", "id", id)
	return nil
}
