package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
)

// PathParams supplies raw path parameter values; *http.Request
// satisfies it.
type PathParams interface {
	PathValue(name string) string
}

// Resolver walks a resource's ownership chain and compares the
// transitive owner against the request's principal. It only returns an
// allow/deny outcome; dispatching the protected handler is the routing
// layer's job.
type Resolver struct {
	columns  repositories.ColumnRepository
	cards    repositories.CardRepository
	comments repositories.CommentRepository
	logger   *slog.Logger
}

func NewResolver(
	columns repositories.ColumnRepository,
	cards repositories.CardRepository,
	comments repositories.CommentRepository,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		columns:  columns,
		cards:    cards,
		comments: comments,
		logger:   logger,
	}
}

// Resolve evaluates one binding for one request. A nil return means the
// principal owns the resource. Every other outcome wraps a domain
// sentinel: ErrValidation for an unusable id parameter, ErrUnauthorized
// when no principal is attached, ErrForbidden on an ownership mismatch,
// ErrNotFound where the route's semantics report a missing resource.
// A store failure is returned unclassified and therefore denies.
func (res *Resolver) Resolve(ctx context.Context, b Binding, params PathParams, principal *models.Principal) error {
	id, ok := parseID(params.PathValue(b.IDParam))
	if !ok {
		return fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, b.IDParam)
	}

	// The authentication gate runs first; a missing principal here
	// means it was bypassed, so deny rather than assume.
	if principal == nil {
		return domain.ErrUnauthorized
	}

	switch b.Type {
	case ResourceSelf:
		if id != principal.ID {
			return domain.ErrForbidden
		}
		return nil

	case ResourceColumn:
		column, err := res.columns.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// A column the caller does not own is indistinguishable
				// from one that does not exist.
				return domain.ErrForbidden
			}
			return res.storeFailure(b, id, err)
		}
		target := principal.ID
		if b.SecondaryParam != "" {
			// Nested /users/{userId}/columns/{columnId} routes check the
			// column against the user named in the path. Only an absent,
			// unparseable, or zero userId falls back to the caller's own
			// id; every other value, negative included, is compared as
			// given and so denies.
			if explicit, err := strconv.ParseInt(params.PathValue(b.SecondaryParam), 10, 64); err == nil && explicit != 0 {
				target = explicit
			}
		}
		if column.UserID != target {
			return domain.ErrForbidden
		}
		return nil

	case ResourceCard:
		card, err := res.cards.GetWithOwnerByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return res.storeFailure(b, id, err)
		}
		if card.ColumnOwnerID != principal.ID {
			return domain.ErrForbidden
		}
		return nil

	case ResourceComment:
		comment, err := res.comments.GetWithOwnerByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return res.storeFailure(b, id, err)
		}
		if comment.ColumnOwnerID != principal.ID {
			return domain.ErrForbidden
		}
		return nil
	}

	// New resource types must be handled above; an unknown type never
	// passes.
	res.logger.Error("unhandled resource type in ownership check", "type", int(b.Type))
	return domain.ErrForbidden
}

// storeFailure logs the underlying store error and returns it wrapped,
// unclassified, so the request fails closed with a 500.
func (res *Resolver) storeFailure(b Binding, id int64, err error) error {
	res.logger.Error("ownership lookup failed",
		"resource", b.Type.String(),
		"id", id,
		"error", err,
	)
	return fmt.Errorf("resolve %s %d: %w", b.Type, id, err)
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
