package models

// Column is a board list owned directly by a user.
type Column struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// Card belongs to a column; its owner is the column's owner.
type Card struct {
	ID          int64   `json:"id"`
	ColumnID    int64   `json:"column_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position"`
}

// CardWithOwner is a card joined with its parent column in a single
// read, so the ownership chain cannot drift between two lookups.
type CardWithOwner struct {
	Card
	ColumnOwnerID int64 `json:"-"`
}

// Comment is authored by a user on a card. For authorization the
// relevant owner is the column owner reached through the card, not the
// comment's author.
type Comment struct {
	ID      int64  `json:"id"`
	CardID  int64  `json:"card_id"`
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
}

// CommentWithOwner is a comment joined through its card to the column
// owner, again in a single read.
type CommentWithOwner struct {
	Comment
	ColumnOwnerID int64 `json:"-"`
}
