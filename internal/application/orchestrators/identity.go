package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
)

// ClubStoreForIdentity defines the store interface needed by the identity gate.
type ClubStoreForIdentity interface {
	GetByEmail(ctx context.Context, email string) (identity.Club, error)
	Insert(ctx context.Context, c identity.Club) error
}

// Identity is the resolved session identity after the gate.
type Identity struct {
	Role   string
	Email  string
	ClubID string // set only for club identities
	Name   string
}

// ResolveIdentityInput carries input for the identity gate.
type ResolveIdentityInput struct {
	// VerifiedEmail is the email asserted by the identity provider.
	VerifiedEmail string
}

// ResolveIdentityDeps holds dependencies for ResolveIdentity.
type ResolveIdentityDeps struct {
	ClubStore   ClubStoreForIdentity
	EmailDomain string
	AdminEmails identity.Allowlist
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteResolveIdentity gates a verified email into a session identity.
// Emails outside the institutional domain are rejected. Allow-listed emails
// become admins; everything else resolves to a club account, created lazily
// on first sign-in with the email local-part as display name.
// PRE: VerifiedEmail has been verified by the identity provider
// POST: Returns the identity, or identity.ErrDomainRejected
func ExecuteResolveIdentity(ctx context.Context, input ResolveIdentityInput, deps ResolveIdentityDeps) (Identity, error) {
	email := identity.NormalizeEmail(input.VerifiedEmail)
	if !identity.HasDomain(email, deps.EmailDomain) {
		slog.Info("identity_event", "event", "domain_rejected", "email", email)
		return Identity{}, identity.ErrDomainRejected
	}

	if identity.ClassifyRole(email, deps.AdminEmails) == identity.RoleAdmin {
		slog.Info("identity_event", "event", "admin_signin", "email", email)
		return Identity{Role: identity.RoleAdmin, Email: email, Name: identity.LocalPart(email)}, nil
	}

	club, err := deps.ClubStore.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		club = identity.Club{
			ID:        deps.GenerateID(),
			Name:      identity.LocalPart(email),
			Email:     email,
			CreatedAt: deps.Now(),
		}
		if err := club.Validate(); err != nil {
			return Identity{}, err
		}
		insertErr := deps.ClubStore.Insert(ctx, club)
		if insertErr != nil {
			// Lost a race on first sign-in: another request created the row.
			if !storage.IsConflict(insertErr) {
				return Identity{}, insertErr
			}
			club, err = deps.ClubStore.GetByEmail(ctx, email)
			if err != nil {
				return Identity{}, err
			}
		} else {
			slog.Info("identity_event", "event", "club_created", "club_id", club.ID, "email", email)
		}
	} else if err != nil {
		return Identity{}, err
	}

	slog.Info("identity_event", "event", "club_signin", "club_id", club.ID, "email", email)
	return Identity{Role: identity.RoleClub, Email: email, ClubID: club.ID, Name: club.Name}, nil
}
