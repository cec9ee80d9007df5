// Package auth implements the authentication flows: registration, login,
// and the request-time access guard for protected routes.
package auth

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/authd/auth/jwt"
	"github.com/skillsenselab/authd/auth/password"
	"github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/users"
	"github.com/skillsenselab/authd/validation"
)

// MinPasswordLength is the registration password policy, enforced here
// before any hashing happens.
const MinPasswordLength = 6

// Session is the outcome of a successful register or login: the sanitized
// user and a bearer token bound to it.
type Session struct {
	User  *users.Public `json:"user"`
	Token string        `json:"token"`
}

// Service orchestrates the credential store, hasher, and token service.
type Service struct {
	store  *users.Store
	hasher password.Hasher
	tokens *jwt.Service
	log    *logger.Logger

	tracer        trace.Tracer
	registrations metric.Int64Counter
	logins        metric.Int64Counter
}

// NewService wires the authentication flows together.
func NewService(store *users.Store, hasher password.Hasher, tokens *jwt.Service, log *logger.Logger) *Service {
	meter := otel.Meter("authd/auth")
	registrations, _ := meter.Int64Counter("auth.registrations",
		metric.WithDescription("Successful user registrations"))
	logins, _ := meter.Int64Counter("auth.logins",
		metric.WithDescription("Successful logins"))

	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    log.WithComponent("auth"),

		tracer:        otel.Tracer("authd/auth"),
		registrations: registrations,
		logins:        logins,
	}
}

// Register validates the credentials, creates the user, and issues a token.
// Duplicate emails fail with Conflict; the store's unique constraint backs
// the pre-check here, so a concurrent insert still surfaces as Conflict.
func (s *Service) Register(ctx context.Context, email, plaintext string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "auth.register")
	defer span.End()

	v := validation.New().
		Required("email", email, "Email is required.").
		Email("email", email, "Please provide a valid email address.").
		MinLength("password", plaintext, MinPasswordLength, "Password must be at least 6 characters.")
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("This email is already registered.")
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, errors.Internal(err)
	}

	user, err := s.store.Create(ctx, email, hash)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(formatUserID(user.ID))
	if err != nil {
		return nil, errors.Internal(err)
	}

	s.registrations.Add(ctx, 1)
	span.SetAttributes(attribute.Int64("user.id", int64(user.ID)))
	s.log.Info("User registered", map[string]interface{}{
		logger.FieldUserID: user.ID,
	})

	return &Session{User: user.Public(), Token: token}, nil
}

// Login verifies the credentials and issues a token. An unknown email and a
// wrong password produce the same Unauthorized error so the response gives
// no signal about which one failed.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "auth.login")
	defer span.End()

	if email == "" || plaintext == "" {
		return nil, errors.Validation("Please provide email and password.")
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Unauthorized("Invalid email or password.")
	}

	if err := s.hasher.Verify(plaintext, user.Password); err != nil {
		return nil, errors.Unauthorized("Invalid email or password.")
	}

	token, err := s.tokens.Issue(formatUserID(user.ID))
	if err != nil {
		return nil, errors.Internal(err)
	}

	s.logins.Add(ctx, 1)
	span.SetAttributes(attribute.Int64("user.id", int64(user.ID)))
	s.log.Info("User logged in", map[string]interface{}{
		logger.FieldUserID: user.ID,
	})

	return &Session{User: user.Public(), Token: token}, nil
}

func formatUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseUserID(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
