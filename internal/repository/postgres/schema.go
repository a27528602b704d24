package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full table set; cmd/seed applies it idempotently.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id       BIGSERIAL PRIMARY KEY,
	email    TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL,
	hash     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS columns (
	id       BIGSERIAL PRIMARY KEY,
	user_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title    TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS cards (
	id          BIGSERIAL PRIMARY KEY,
	column_id   BIGINT NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	description TEXT,
	position    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS comments (
	id      BIGSERIAL PRIMARY KEY,
	card_id BIGINT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_columns_user_id ON columns(user_id);
CREATE INDEX IF NOT EXISTS idx_cards_column_id ON cards(column_id);
CREATE INDEX IF NOT EXISTS idx_comments_card_id ON comments(card_id);
CREATE INDEX IF NOT EXISTS idx_comments_user_id ON comments(user_id);
`

// ApplySchema creates the tables and indexes if they do not exist.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
