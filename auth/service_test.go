package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skillsenselab/authd/auth/jwt"
	"github.com/skillsenselab/authd/auth/password"
	"github.com/skillsenselab/authd/database"
	"github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/users"
)

func newTestService(t *testing.T) (*Service, *jwt.Service) {
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

	if err := db.MigrateUp(users.Migrations, users.MigrationsPath); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store, err := users.NewStore(db, log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	tokens, err := jwt.NewService(jwt.Config{
		Secret: "test-secret",
		TTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("jwt.NewService: %v", err)
	}

	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	return NewService(store, hasher, tokens, log), tokens
}

func wantAppError(t *testing.T, err error, status int, message string) {
	t.Helper()

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPStatus != status {
		t.Errorf("status = %d, want %d", appErr.HTTPStatus, status)
	}
	if appErr.Message != message {
		t.Errorf("message = %q, want %q", appErr.Message, message)
	}
}

func TestRegister(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, "new@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if session.User == nil || session.User.ID == 0 {
		t.Fatal("expected a persisted user in the session")
	}
	if session.User.Email != "new@example.com" {
		t.Errorf("email = %q", session.User.Email)
	}
	if session.Token == "" {
		t.Fatal("expected a token")
	}

	subject, err := tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if subject != formatUserID(session.User.ID) {
		t.Errorf("token subject = %q, want %q", subject, formatUserID(session.User.ID))
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{"missing email", "", "secret1", "Email is required."},
		{"blank email", "   ", "secret1", "Email is required."},
		{"malformed email", "not-an-email", "secret1", "Please provide a valid email address."},
		{"no domain dot", "user@host", "secret1", "Please provide a valid email address."},
		{"short password", "user@example.com", "short", "Password must be at least 6 characters."},
		{"missing password", "user@example.com", "", "Password must be at least 6 characters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password)
			wantAppError(t, err, http.StatusBadRequest, tt.message)
		})
	}
}

func TestRegister_PaddedEmailAccepted(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Register(context.Background(), "  Padded@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if session.User.Email != "padded@example.com" {
		t.Errorf("stored email = %q, want normalized form", session.User.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "secret1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	for _, email := range []string{"dup@example.com", "DUP@Example.com", " dup@example.com "} {
		_, err := svc.Register(ctx, email, "secret1")
		wantAppError(t, err, http.StatusConflict, "This email is already registered.")
	}
}

func TestLogin(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "login@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	session, err := svc.Login(ctx, "Login@Example.COM ", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.User.ID != registered.User.ID {
		t.Errorf("user ID = %d, want %d", session.User.ID, registered.User.ID)
	}
	if _, err := tokens.Verify(session.Token); err != nil {
		t.Errorf("issued token does not verify: %v", err)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, tt := range []struct{ email, password string }{
		{"", "secret1"},
		{"user@example.com", ""},
		{"", ""},
	} {
		_, err := svc.Login(ctx, tt.email, tt.password)
		wantAppError(t, err, http.StatusBadRequest, "Please provide email and password.")
	}
}

func TestLogin_FailureIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "known@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "secret1")
	_, wrongErr := svc.Login(ctx, "known@example.com", "wrong-password")

	wantAppError(t, unknownErr, http.StatusUnauthorized, "Invalid email or password.")
	wantAppError(t, wrongErr, http.StatusUnauthorized, "Invalid email or password.")

	unknownApp, _ := errors.AsAppError(unknownErr)
	wrongApp, _ := errors.AsAppError(wrongErr)
	if unknownApp.Message != wrongApp.Message || unknownApp.HTTPStatus != wrongApp.HTTPStatus {
		t.Error("unknown-email and wrong-password failures must be indistinguishable")
	}
}
