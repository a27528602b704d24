// Package seed loads a YAML board fixture into the store. Passwords in
// the fixture are plaintext and hashed on load, so fixtures stay
// readable and the store never sees an unhashed credential.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
)

// Fixture is the YAML document cmd/seed consumes.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
}

type FixtureUser struct {
	Email    string          `yaml:"email"`
	Username string          `yaml:"username"`
	Password string          `yaml:"password"`
	Columns  []FixtureColumn `yaml:"columns"`
}

type FixtureColumn struct {
	Title    string        `yaml:"title"`
	Position int           `yaml:"position"`
	Cards    []FixtureCard `yaml:"cards"`
}

type FixtureCard struct {
	Title       string   `yaml:"title"`
	Description *string  `yaml:"description"`
	Position    int      `yaml:"position"`
	Comments    []string `yaml:"comments"`
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fixture, nil
}

// Seeder writes a fixture through the repository layer so the same
// constraints apply as in production traffic.
type Seeder struct {
	users    repositories.UserRepository
	columns  repositories.ColumnRepository
	cards    repositories.CardRepository
	comments repositories.CommentRepository
	logger   *slog.Logger
}

func NewSeeder(
	users repositories.UserRepository,
	columns repositories.ColumnRepository,
	cards repositories.CardRepository,
	comments repositories.CommentRepository,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		users:    users,
		columns:  columns,
		cards:    cards,
		comments: comments,
		logger:   logger,
	}
}

// Apply inserts the fixture. Users that already exist are skipped along
// with their board, so re-running the seeder is safe.
func (s *Seeder) Apply(ctx context.Context, fixture *Fixture) error {
	for _, fu := range fixture.Users {
		hash, err := auth.HashPassword(fu.Password)
		if err != nil {
			return fmt.Errorf("hash fixture password for %s: %w", fu.Email, err)
		}

		user := &models.User{Email: fu.Email, Username: fu.Username, Hash: hash}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.logger.Info("seed user already present, skipping", "email", fu.Email)
				continue
			}
			return fmt.Errorf("seed user %s: %w", fu.Email, err)
		}

		for _, fc := range fu.Columns {
			column := &models.Column{UserID: user.ID, Title: fc.Title, Position: fc.Position}
			if err := s.columns.Create(ctx, column); err != nil {
				return fmt.Errorf("seed column %q: %w", fc.Title, err)
			}

			for _, fcard := range fc.Cards {
				card := &models.Card{
					ColumnID:    column.ID,
					Title:       fcard.Title,
					Description: fcard.Description,
					Position:    fcard.Position,
				}
				if err := s.cards.Create(ctx, card); err != nil {
					return fmt.Errorf("seed card %q: %w", fcard.Title, err)
				}

				for _, content := range fcard.Comments {
					comment := &models.Comment{CardID: card.ID, UserID: user.ID, Content: content}
					if err := s.comments.Create(ctx, comment); err != nil {
						return fmt.Errorf("seed comment on %q: %w", fcard.Title, err)
					}
				}
			}
		}

		s.logger.Info("seeded user", "email", fu.Email, "columns", len(fu.Columns))
	}
	return nil
}
