package identity

import (
	"errors"
	"strings"
	"time"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleClub  = "club"
)

// Domain errors
var (
	ErrEmptyEmail     = errors.New("email is required")
	ErrEmptyClubName  = errors.New("club name is required")
	ErrEmptyAdminName = errors.New("admin name is required")
	ErrDomainRejected = errors.New("email is outside the allowed institutional domain")
)

// Club is a tenant organisation account. One row per email, created lazily
// on first authenticated access.
type Club struct {
	ID        string
	Name      string // club_name
	Email     string // club_email, unique
	CreatedAt time.Time
}

// Validate checks if the Club has valid data.
// PRE: Club struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Club) Validate() error {
	if c.Email == "" {
		return ErrEmptyEmail
	}
	if c.Name == "" {
		return ErrEmptyClubName
	}
	return nil
}

// Admin is a reviewer account. Created lazily the first time an admin
// posts a review comment.
type Admin struct {
	ID        string
	Name      string
	Email     string // email_id, unique
	CreatedAt time.Time
}

// Validate checks if the Admin has valid data.
// PRE: Admin struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Admin) Validate() error {
	if a.Email == "" {
		return ErrEmptyEmail
	}
	if a.Name == "" {
		return ErrEmptyAdminName
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LocalPart returns the part of the email before the @, used as the derived
// display name for lazily created Club and Admin rows.
func LocalPart(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	return email[:at]
}

// HasDomain reports whether the email belongs to the given institutional
// domain. The comparison is case-insensitive; the domain may be configured
// with or without a leading "@".
func HasDomain(email, domain string) bool {
	if email == "" || domain == "" {
		return false
	}
	suffix := strings.ToLower(domain)
	if !strings.HasPrefix(suffix, "@") {
		suffix = "@" + suffix
	}
	return strings.HasSuffix(NormalizeEmail(email), suffix)
}

// Allowlist is the static set of admin emails.
type Allowlist []string

// Contains reports whether the email is on the allow-list (case-insensitive).
// INVARIANT: the allow-list itself is never mutated
func (a Allowlist) Contains(email string) bool {
	normalized := NormalizeEmail(email)
	for _, e := range a {
		if NormalizeEmail(e) == normalized {
			return true
		}
	}
	return false
}

// ClassifyRole returns RoleAdmin when the email is on the allow-list,
// RoleClub otherwise.
func ClassifyRole(email string, admins Allowlist) string {
	if admins.Contains(email) {
		return RoleAdmin
	}
	return RoleClub
}
