// Package users persists credential records keyed by a unique normalized
// email. Email normalization (trim + lowercase) happens only here, at the
// store's read/write boundary.
package users

import (
	"embed"
	"time"
)

// Migrations holds the schema for the users table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsPath is the directory inside Migrations.
const MigrationsPath = "migrations"

// User is a stored credential record. The identifier and creation timestamp
// are store-assigned; email and password hash are immutable after creation.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table name independent of GORM pluralization rules.
func (User) TableName() string { return "users" }

// Public is the sanitized projection of a user: everything but the password
// hash. It is the only user shape that leaves the service.
type Public struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the sanitized projection of u.
func (u *User) Public() *Public {
	if u == nil {
		return nil
	}
	return &Public{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
