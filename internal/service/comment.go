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

// CommentService manages card comments. A comment's author may differ
// from the board owner; authorization to delete follows the column
// owner, not the author.
type CommentService struct {
	comments repositories.CommentRepository
	logger   *slog.Logger
}

func NewCommentService(comments repositories.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{comments: comments, logger: logger}
}

type CreateCommentRequest struct {
	CardID  int64  `json:"card_id"`
	Content string `json:"content"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CardID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Content, validation.Required, validation.Length(1, 4096)),
	)
}

func (s *CommentService) Create(ctx context.Context, authorID int64, req *CreateCommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	comment := &models.Comment{
		CardID:  req.CardID,
		UserID:  authorID,
		Content: req.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created", "id", comment.ID, "card_id", comment.CardID)
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *CommentService) ListByUser(ctx context.Context, userID int64) ([]models.Comment, error) {
	return s.comments.ListByUserID(ctx, userID)
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("comment deleted", "id", id)
	return nil
}
