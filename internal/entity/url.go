// Package entity defines the entities and errors used in the application.
// It includes the URL struct, which represents a shortened URL, the AccessLog
// struct recorded on every successful redirect, and the error taxonomy shared
// by the use case and delivery layers.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInput is returned when the submitted URL or parameters are malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrURLExpired is returned when the URL exists but its expiration time has passed.
	ErrURLExpired = errors.New("url has expired")
	// ErrPasswordRequired is returned when a password-protected URL is accessed without a credential.
	ErrPasswordRequired = errors.New("password required")
	// ErrPasswordMismatch is returned when the supplied credential does not match the stored hash.
	ErrPasswordMismatch = errors.New("password mismatch")
)

// URL represents a shortened URL.
type URL struct {
	ID           int64     // ID is the unique identifier of the URL in the database.
	ShortCode    string    // ShortCode is the generated token used to shorten the original URL.
	OriginalURL  string    // OriginalURL is the full URL that the short code resolves to.
	PasswordHash *string   // PasswordHash is the bcrypt hash guarding the URL, nil when unprotected.
	URLStats               // URLStats contains statistics about the URL.
	CreatedAt    time.Time // CreatedAt is the timestamp when the URL was created.
	ExpiresAt    time.Time // ExpiresAt is the timestamp after which the URL no longer resolves.
}

// URLStats contains statistics related to a shortened URL.
type URLStats struct {
	AccessCount int64 // AccessCount is the number of times the shortened URL has been accessed.
}

// IsExpired reports whether the URL is past its expiration time at the given moment.
func (u *URL) IsExpired(now time.Time) bool {
	return now.After(u.ExpiresAt)
}

// IsProtected reports whether the URL requires a password.
func (u *URL) IsProtected() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
