/*
 * file: user.go
 * package: domain
 * description:
 *     Defines the User entity. A user with no email/password set is a
 *     temporary user, addressable only by its API key.
 */

package domain

import "time"

// User represents an account known to the match server.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        *string `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	IsAdmin      bool    `gorm:"default:false" json:"isAdmin"`
	PasswordHash *string `gorm:"size:255" json:"-"`
	// ApiKeyHash is the 64-char lowercase hex SHA-256 of the raw API key.
	// The raw key itself is never persisted.
	ApiKeyHash string `gorm:"size:64;not null;uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsTemporary reports whether this user has no login credentials of its
// own and is addressable only through its API key.
func (u *User) IsTemporary() bool {
	return u.Email == nil && u.PasswordHash == nil
}
