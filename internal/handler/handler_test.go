package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/internal/authz"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/httputil"
	"taskboard/internal/service"
)

type fakeUserRepo struct {
	byID map[int64]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error { return nil }
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", domain.ErrNotFound)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user by id: %w", domain.ErrNotFound)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *models.User) error { return nil }

type fakeColumnRepo struct {
	byID    map[int64]*models.Column
	touched bool
}

func (f *fakeColumnRepo) Create(ctx context.Context, c *models.Column) error { return nil }
func (f *fakeColumnRepo) GetByID(ctx context.Context, id int64) (*models.Column, error) {
	f.touched = true
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("get column by id: %w", domain.ErrNotFound)
}
func (f *fakeColumnRepo) ListByUserID(ctx context.Context, userID int64) ([]models.Column, error) {
	return nil, nil
}
func (f *fakeColumnRepo) Update(ctx context.Context, c *models.Column) error { return nil }
func (f *fakeColumnRepo) Delete(ctx context.Context, id int64) error         { return nil }

type fakeCardRepo struct {
	columnExists bool
}

func (f *fakeCardRepo) Create(ctx context.Context, c *models.Card) error {
	if !f.columnExists {
		return fmt.Errorf("create card: %w", domain.ErrNotFound)
	}
	c.ID = 1
	return nil
}
func (f *fakeCardRepo) GetWithOwnerByID(ctx context.Context, id int64) (*models.CardWithOwner, error) {
	return nil, fmt.Errorf("get card with owner: %w", domain.ErrNotFound)
}
func (f *fakeCardRepo) ListByUserID(ctx context.Context, userID int64) ([]models.Card, error) {
	return nil, nil
}
func (f *fakeCardRepo) ListByColumnID(ctx context.Context, columnID int64) ([]models.Card, error) {
	return nil, nil
}
func (f *fakeCardRepo) Update(ctx context.Context, c *models.Card) error { return nil }
func (f *fakeCardRepo) Delete(ctx context.Context, id int64) error       { return nil }

type fakeCommentRepo struct {
	byID    map[int64]*models.CommentWithOwner
	deleted []int64
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *models.Comment) error { return nil }
func (f *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	if c, ok := f.byID[id]; ok {
		return &c.Comment, nil
	}
	return nil, fmt.Errorf("get comment by id: %w", domain.ErrNotFound)
}
func (f *fakeCommentRepo) GetWithOwnerByID(ctx context.Context, id int64) (*models.CommentWithOwner, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("get comment with owner: %w", domain.ErrNotFound)
}
func (f *fakeCommentRepo) ListByCardID(ctx context.Context, cardID int64) ([]models.Comment, error) {
	return nil, nil
}
func (f *fakeCommentRepo) ListByUserID(ctx context.Context, userID int64) ([]models.Comment, error) {
	return nil, nil
}
func (f *fakeCommentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return fmt.Errorf("delete comment: %w", domain.ErrNotFound)
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// asPrincipal simulates a request that already passed the
// authentication gate.
func asPrincipal(p models.Principal, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, httputil.WithPrincipal(r, p))
	})
}

func TestGetUserNeverExposesHash(t *testing.T) {
	users := &fakeUserRepo{byID: map[int64]*models.User{
		1: {ID: 1, Email: "test@test.ru", Username: "john_doe", Hash: "$2a$05$secret-digest"},
	}}
	h := NewUserHandler(service.NewUserService(users, discardLogger()), nil, discardLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", h.Get)

	r := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "hash") || strings.Contains(body, "secret-digest") {
		t.Errorf("response leaks credential material: %s", body)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if decoded["email"] != "test@test.ru" {
		t.Errorf("email = %v, want test@test.ru", decoded["email"])
	}
}

func TestGetUserUnknownID(t *testing.T) {
	users := &fakeUserRepo{byID: map[int64]*models.User{}}
	h := NewUserHandler(service.NewUserService(users, discardLogger()), nil, discardLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", h.Get)

	r := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCreateCardMissingColumnIsNotFound(t *testing.T) {
	cards := &fakeCardRepo{columnExists: false}
	h := NewCardHandler(service.NewCardService(cards, &fakeCommentRepo{}, discardLogger()), discardLogger())

	r := httptest.NewRequest(http.MethodPost, "/cards",
		strings.NewReader(`{"column_id": 42, "title": "Task", "position": 1}`))
	w := httptest.NewRecorder()
	h.Create(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for broken column reference", w.Code)
	}
}

func TestDeleteCommentOwnership(t *testing.T) {
	newStack := func() (*fakeCommentRepo, http.Handler) {
		comments := &fakeCommentRepo{byID: map[int64]*models.CommentWithOwner{
			30: {Comment: models.Comment{ID: 30, CardID: 20, UserID: 2, Content: "hi"}, ColumnOwnerID: 1},
		}}
		resolver := authz.NewResolver(&fakeColumnRepo{}, &fakeCardRepo{}, comments, discardLogger())
		guard := NewGuard(resolver)
		h := NewCommentHandler(service.NewCommentService(comments, discardLogger()), discardLogger())

		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /comments/{commentId}", guard.Own(
			authz.Binding{Type: authz.ResourceComment, IDParam: "commentId"},
			h.Delete,
		))
		return comments, mux
	}

	t.Run("board owner may delete", func(t *testing.T) {
		comments, mux := newStack()
		r := httptest.NewRequest(http.MethodDelete, "/comments/30", nil)
		w := httptest.NewRecorder()
		asPrincipal(models.Principal{ID: 1, Email: "owner@test.ru"}, mux).ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if len(comments.deleted) != 1 || comments.deleted[0] != 30 {
			t.Errorf("deleted = %v, want [30]", comments.deleted)
		}
	})

	t.Run("author without board ownership is forbidden", func(t *testing.T) {
		comments, mux := newStack()
		r := httptest.NewRequest(http.MethodDelete, "/comments/30", nil)
		w := httptest.NewRecorder()
		asPrincipal(models.Principal{ID: 2, Email: "author@test.ru"}, mux).ServeHTTP(w, r)

		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
		if len(comments.deleted) != 0 {
			t.Errorf("comment deleted despite denial")
		}
	})

	t.Run("missing comment reports not found", func(t *testing.T) {
		_, mux := newStack()
		r := httptest.NewRequest(http.MethodDelete, "/comments/99", nil)
		w := httptest.NewRecorder()
		asPrincipal(models.Principal{ID: 1, Email: "owner@test.ru"}, mux).ServeHTTP(w, r)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestGuardRejectsBadIDBeforeStoreAccess(t *testing.T) {
	columns := &fakeColumnRepo{byID: map[int64]*models.Column{
		7: {ID: 7, UserID: 1, Title: "To Do", Position: 1},
	}}
	resolver := authz.NewResolver(columns, &fakeCardRepo{}, &fakeCommentRepo{}, discardLogger())
	guard := NewGuard(resolver)

	var handlerRan bool
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /columns/{columnId}", guard.Own(
		authz.Binding{Type: authz.ResourceColumn, IDParam: "columnId"},
		func(w http.ResponseWriter, r *http.Request) { handlerRan = true },
	))

	for _, raw := range []string{"abc", "0", "-5"} {
		t.Run(raw, func(t *testing.T) {
			columns.touched = false
			handlerRan = false
			r := httptest.NewRequest(http.MethodPatch, "/columns/"+raw, strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			asPrincipal(models.Principal{ID: 1, Email: "owner@test.ru"}, mux).ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if columns.touched {
				t.Error("store consulted before id validation")
			}
			if handlerRan {
				t.Error("handler ran despite invalid id")
			}
		})
	}
}

func TestGuardColumnOwnership(t *testing.T) {
	columns := &fakeColumnRepo{byID: map[int64]*models.Column{
		7: {ID: 7, UserID: 1, Title: "To Do", Position: 1},
	}}
	resolver := authz.NewResolver(columns, &fakeCardRepo{}, &fakeCommentRepo{}, discardLogger())
	guard := NewGuard(resolver)

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /columns/{columnId}", guard.Own(
		authz.Binding{Type: authz.ResourceColumn, IDParam: "columnId"},
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) },
	))

	tests := []struct {
		name      string
		principal int64
		want      int
	}{
		{name: "owner passes", principal: 1, want: http.StatusCreated},
		{name: "stranger forbidden", principal: 2, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPatch, "/columns/7", strings.NewReader(`{"title":"x"}`))
			w := httptest.NewRecorder()
			asPrincipal(models.Principal{ID: tt.principal, Email: "u@test.ru"}, mux).ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestGuardWithoutPrincipal(t *testing.T) {
	resolver := authz.NewResolver(&fakeColumnRepo{}, &fakeCardRepo{}, &fakeCommentRepo{}, discardLogger())
	guard := NewGuard(resolver)

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /columns/{columnId}", guard.Own(
		authz.Binding{Type: authz.ResourceColumn, IDParam: "columnId"},
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	))

	r := httptest.NewRequest(http.MethodDelete, "/columns/7", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when no principal attached", w.Code)
	}
}
