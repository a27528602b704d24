package middleware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/httputil"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error { return nil }
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user by email: %w", domain.ErrNotFound)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, u *models.User) error { return nil }

func TestAuthenticateRejects(t *testing.T) {
	tokens := auth.NewTokenService([]byte("test-secret"))
	users := &fakeUserRepo{byEmail: map[string]*models.User{
		"alice@test.ru": {ID: 1, Email: "alice@test.ru", Username: "alice"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := Authenticate(tokens, users, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	orphanToken, err := tokens.Issue(9, "deleted@test.ru")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	wrongKey, err := auth.NewTokenService([]byte("other-secret")).Issue(1, "alice@test.ru")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic YWxpY2U6cHc="},
		{name: "bearer without token", header: "Bearer "},
		{name: "structurally invalid token", header: "Bearer not.a.jwt"},
		{name: "wrong signing key", header: "Bearer " + wrongKey},
		{name: "principal deleted after issuance", header: "Bearer " + orphanToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/columns", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			gate.ServeHTTP(w, r)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	tokens := auth.NewTokenService([]byte("test-secret"))
	users := &fakeUserRepo{byEmail: map[string]*models.User{
		"alice@test.ru": {ID: 1, Email: "alice@test.ru", Username: "alice", Hash: "secret-digest"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen *models.Principal
	gate := Authenticate(tokens, users, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := httputil.GetPrincipal(r); ok {
			seen = &p
		}
		w.WriteHeader(http.StatusOK)
	}))

	token, err := tokens.Issue(1, "alice@test.ru")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/columns", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if seen == nil {
		t.Fatal("principal not attached to request context")
	}
	if seen.ID != 1 || seen.Email != "alice@test.ru" {
		t.Errorf("principal = %+v, want id 1 email alice@test.ru", seen)
	}
}

func TestAuthenticateSkipsPublicRoutes(t *testing.T) {
	tokens := auth.NewTokenService([]byte("test-secret"))
	users := &fakeUserRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := Authenticate(tokens, users, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/auth/signup"},
		{http.MethodPost, "/auth/login"},
		{http.MethodGet, "/health"},
		{http.MethodOptions, "/columns"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			gate.ServeHTTP(w, r)
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200 without credentials", w.Code)
			}
		})
	}
}
