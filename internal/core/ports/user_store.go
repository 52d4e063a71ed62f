package ports

import (
	"context"

	"github.com/eshopsolution/admin-api/internal/core/domain"
)

// UserStore defines the capability interface over the credential store. The
// store is the authority on username/email uniqueness (unique indexes);
// service-level pre-checks are a best-effort fast fail only.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create persists a new user with the given plaintext password. The
	// store owns the hashing scheme; plaintext never leaves this call.
	Create(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error

	// VerifyPassword checks the plaintext password against the stored
	// credential. A mismatch is reported as (false, nil), not an error.
	VerifyPassword(ctx context.Context, user *domain.User, password string) (bool, error)

	GetRoles(ctx context.Context, id string) ([]string, error)
	AddToRole(ctx context.Context, id, role string) error
	RemoveFromRole(ctx context.Context, id, role string) error

	// CountMatching and PageMatching back keyword search over username,
	// phone and email. Ordering is user ID ascending so pages are stable.
	CountMatching(ctx context.Context, keyword string) (int64, error)
	PageMatching(ctx context.Context, keyword string, skip, take int) ([]*domain.User, error)
}

// SessionRecorder tracks issued sign-in sessions so their lifetime can honor
// the remember-me flag independently of the token's internal expiry.
type SessionRecorder interface {
	Record(ctx context.Context, username, token string, persistent bool) error
}
