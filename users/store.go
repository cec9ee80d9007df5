package users

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/skillsenselab/authd/database"
	"github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/logger"
)

// ErrNotInitialized reports store access before setup.
var ErrNotInitialized = stderrors.New("users: store not initialized")

// Store provides lookup and creation of credential records.
type Store struct {
	db  *database.DB
	log *logger.Logger
}

// NewStore creates a Store over an open database handle. It fails fast on a
// nil handle rather than deferring the crash to the first query.
func NewStore(db *database.DB, log *logger.Logger) (*Store, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	return &Store{db: db, log: log.WithComponent("users")}, nil
}

// normalizeEmail is the single place email addresses are canonicalized.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail looks up the full record for an address. The input is
// normalized before the lookup. Absence is not an error: it returns
// (nil, nil).
func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&user).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.DatabaseError(err)
	}
	return &user, nil
}

// FindByID looks up the public-safe projection for an identifier. Absence
// returns (nil, nil).
func (s *Store) FindByID(ctx context.Context, id uint) (*Public, error) {
	var user User
	err := s.db.WithContext(ctx).
		Select("id", "email", "created_at").
		First(&user, id).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.DatabaseError(err)
	}
	return user.Public(), nil
}

// Create inserts a new record for the normalized email and returns it with
// the store-assigned identifier and timestamp. The table's unique constraint
// is the authority on duplicates: a constraint violation maps to Conflict no
// matter what any earlier existence check concluded.
func (s *Store) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	user := &User{
		Email:    normalizeEmail(email),
		Password: passwordHash,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, errors.Conflict("This email is already registered.").WithCause(err)
		}
		return nil, errors.DatabaseError(err)
	}

	s.log.Debug("User created", map[string]interface{}{
		logger.FieldUserID: user.ID,
	})
	return user, nil
}
