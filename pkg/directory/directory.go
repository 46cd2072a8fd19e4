package directory

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/medisure/medisurechat/pkg/chat"
)

// ErrNotFound is returned when no user exists for the requested id
var ErrNotFound = errors.New("directory: user not found")

// UserDirectory resolves user ids to profiles. Lookups are idempotent and
// side-effect-free.
type UserDirectory interface {
	GetUserProfile(id string) (*chat.UserProfile, error)
	ListByRole(role chat.Role) ([]chat.UserProfile, error)
}

// User is the struct for managing database access to user profiles. The
// table is owned by the auth system; this package only reads it. Phone and
// Language are used by the offline notifier, not surfaced on profiles.
type User struct {
	ID         string     `gorm:"primary_key" json:"id"`
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	LastSeenAt *time.Time `gorm:"column:last_seen_at" json:"lastSeenAt"`
	Phone      string     `json:"phone"`
	Language   string     `json:"language"`
}

// TableName sets the users table shared with the auth system
func (User) TableName() string {
	return "users"
}

// Profile converts the database row to the read-only profile shape
func (u *User) Profile() *chat.UserProfile {
	return &chat.UserProfile{
		ID:         u.ID,
		Username:   u.Username,
		Role:       chat.Role(u.Role),
		LastSeenAt: u.LastSeenAt,
	}
}

// GormDirectory implements UserDirectory against the shared users table
type GormDirectory struct {
	DB *gorm.DB
}

// NewGormDirectory is a constructor for GormDirectory structs
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{DB: db}
}

// GetUserProfile loads a single profile by id
func (d *GormDirectory) GetUserProfile(id string) (*chat.UserProfile, error) {
	var user User
	query := d.DB.Where("id = ?", id).First(&user)
	if query.RecordNotFound() {
		return nil, ErrNotFound
	}
	if query.Error != nil {
		return nil, fmt.Errorf("directory: lookup %s: %w", id, query.Error)
	}
	return user.Profile(), nil
}

// ListByRole returns all profiles with the given role, for recipient pickers
func (d *GormDirectory) ListByRole(role chat.Role) ([]chat.UserProfile, error) {
	var users []User
	query := d.DB.Where("role = ?", string(role)).Find(&users)
	if query.Error != nil {
		return nil, fmt.Errorf("directory: list %s: %w", role, query.Error)
	}
	profiles := make([]chat.UserProfile, 0, len(users))
	for idx := range users {
		profiles = append(profiles, *users[idx].Profile())
	}
	return profiles, nil
}
