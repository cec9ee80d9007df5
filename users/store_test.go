package users

import (
	"context"
	"net/http"
	"testing"

	"github.com/skillsenselab/authd/database"
	"github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	log := logger.NewDefault("test")
	db, err := database.New(context.Background(), database.Config{
		Path:     ":memory:",
		LogLevel: "silent",
	}, log)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.MigrateUp(Migrations, MigrationsPath); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store, err := NewStore(db, log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestNewStore_NilDB(t *testing.T) {
	if _, err := NewStore(nil, logger.NewDefault("test")); err != ErrNotInitialized {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Create(ctx, "user@example.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected store-assigned ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected store-assigned creation timestamp")
	}
	if user.Email != "user@example.com" {
		t.Errorf("unexpected email: %q", user.Email)
	}
}

func TestCreate_NormalizesEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Create(ctx, "  A@Test.com ", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Email != "a@test.com" {
		t.Errorf("expected normalized email a@test.com, got %q", user.Email)
	}
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "user@example.com", "hash"); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Case and whitespace variants collapse onto the same normalized key.
	variants := []string{"user@example.com", "USER@example.com", " user@Example.COM "}
	for _, v := range variants {
		_, err := store.Create(ctx, v, "hash2")
		appErr, ok := errors.AsAppError(err)
		if !ok {
			t.Fatalf("Create(%q): expected AppError, got %v", v, err)
		}
		if appErr.Code != errors.ErrCodeConflict {
			t.Errorf("Create(%q): expected CONFLICT, got %s", v, appErr.Code)
		}
		if appErr.HTTPStatus != http.StatusConflict {
			t.Errorf("Create(%q): expected 409, got %d", v, appErr.HTTPStatus)
		}
	}

	// Exactly one record exists.
	u, err := store.FindByEmail(ctx, "user@example.com")
	if err != nil || u == nil {
		t.Fatalf("FindByEmail after duplicates: %v %v", u, err)
	}
}

func TestFindByEmail_NormalizesLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "a@test.com", "hash"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	user, err := store.FindByEmail(ctx, " A@TEST.COM ")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected lookup with case/whitespace variant to hit")
	}
	if user.Password != "hash" {
		t.Error("FindByEmail should return the full record including the hash")
	}
}

func TestFindByEmail_AbsentIsNotError(t *testing.T) {
	store := newTestStore(t)

	user, err := store.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("expected no error for absent email, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}

func TestFindByID_ExcludesHash(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "a@test.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pub, err := store.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if pub == nil {
		t.Fatal("expected user")
	}
	if pub.ID != created.ID || pub.Email != "a@test.com" {
		t.Errorf("unexpected projection: %+v", pub)
	}
	if pub.CreatedAt.IsZero() {
		t.Error("projection should include the creation timestamp")
	}
}

func TestFindByID_Absent(t *testing.T) {
	store := newTestStore(t)

	pub, err := store.FindByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("expected no error for absent id, got %v", err)
	}
	if pub != nil {
		t.Errorf("expected nil, got %+v", pub)
	}
}
