package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eshopsolution/admin-api/internal/core/domain"
	"github.com/eshopsolution/admin-api/internal/core/ports"
)

// User-facing failure messages. Rendered directly by callers, so they stay
// short and free of internal detail.
const (
	msgAccountNotFound = "Account does not exist"
	msgSignInFailed    = "Sign-in failed"
	msgAccountTaken    = "Account already exists"
	msgEmailTaken      = "Email already exists"
	msgUserNotFound    = "User does not exist"
	msgBadPaging       = "Invalid paging parameters"
)

type userService struct {
	store    ports.UserStore
	tokens   *TokenIssuer
	sessions ports.SessionRecorder
	log      zerolog.Logger
}

// NewUserService returns the UserService orchestrator. sessions may be nil
// when no session lifetime tracking is wanted (e.g. in tests).
func NewUserService(store ports.UserStore, tokens *TokenIssuer, sessions ports.SessionRecorder, log zerolog.Logger) ports.UserService {
	return &userService{store: store, tokens: tokens, sessions: sessions, log: log}
}

// Authenticate verifies the credentials and issues a signed session token
// whose claims snapshot the user's current roles.
func (s *userService) Authenticate(ctx context.Context, username, password string, rememberMe bool) (domain.Result[string], error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Fail[string](domain.FailureNotFound, msgAccountNotFound), nil
		}
		return domain.Result[string]{}, fmt.Errorf("authenticate: %w", err)
	}

	ok, err := s.store.VerifyPassword(ctx, user, password)
	if err != nil {
		return domain.Result[string]{}, fmt.Errorf("authenticate: verify password: %w", err)
	}
	if !ok {
		s.log.Warn().Str("username", username).Msg("sign-in rejected")
		return domain.Fail[string](domain.FailureUnauthorized, msgSignInFailed), nil
	}

	roles, err := s.store.GetRoles(ctx, user.ID)
	if err != nil {
		return domain.Result[string]{}, fmt.Errorf("authenticate: load roles: %w", err)
	}

	token, err := s.tokens.Issue(user, roles, time.Now().UTC())
	if err != nil {
		return domain.Result[string]{}, fmt.Errorf("authenticate: issue token: %w", err)
	}

	// Remember-me stretches the surrounding session lifetime only; the
	// token's own expiry is fixed at issuance.
	if s.sessions != nil {
		if err := s.sessions.Record(ctx, username, token, rememberMe); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to record session")
		}
	}

	s.log.Info().Str("username", username).Bool("remember_me", rememberMe).Msg("user authenticated")
	return domain.Ok(token), nil
}

// Register creates a new account after best-effort uniqueness pre-checks.
// The store's unique indexes remain the authority against concurrent racers.
func (s *userService) Register(ctx context.Context, input ports.RegisterInput) (domain.Result[bool], error) {
	if _, err := s.store.FindByUsername(ctx, input.UserName); err == nil {
		return domain.Fail[bool](domain.FailureConflict, msgAccountTaken), nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.Result[bool]{}, fmt.Errorf("register: %w", err)
	}

	if _, err := s.store.FindByEmail(ctx, input.Email); err == nil {
		return domain.Fail[bool](domain.FailureConflict, msgEmailTaken), nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.Result[bool]{}, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		UserName:  input.UserName,
		Email:     input.Email,
		Name:      input.Name,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.store.Create(ctx, user, input.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return domain.Fail[bool](domain.FailureConflict, msgAccountTaken), nil
		case errors.Is(err, domain.ErrEmailExists):
			return domain.Fail[bool](domain.FailureConflict, msgEmailTaken), nil
		}
		return domain.Result[bool]{}, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", input.UserName).Msg("user registered")
	return domain.Ok(true), nil
}

// Update mutates email, name and phone in place. Username and ID are
// immutable; email must not collide with another account.
func (s *userService) Update(ctx context.Context, id string, input ports.UpdateInput) (domain.Result[bool], error) {
	owner, err := s.store.FindByEmail(ctx, input.Email)
	if err == nil && owner.ID != id {
		return domain.Fail[bool](domain.FailureConflict, msgEmailTaken), nil
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return domain.Result[bool]{}, fmt.Errorf("update user: %w", err)
	}

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Fail[bool](domain.FailureNotFound, msgUserNotFound), nil
		}
		return domain.Result[bool]{}, fmt.Errorf("update user: %w", err)
	}

	user.Email = input.Email
	user.Name = input.Name
	user.Phone = input.Phone
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return domain.Fail[bool](domain.FailureConflict, msgEmailTaken), nil
		}
		return domain.Result[bool]{}, fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return domain.Ok(true), nil
}

// Delete removes the user and its role associations.
func (s *userService) Delete(ctx context.Context, id string) (domain.Result[bool], error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Fail[bool](domain.FailureNotFound, msgUserNotFound), nil
		}
		return domain.Result[bool]{}, fmt.Errorf("delete user: %w", err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[bool]{}, fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	return domain.Ok(true), nil
}

// GetByID returns the user projection including its current role names.
func (s *userService) GetByID(ctx context.Context, id string) (domain.Result[domain.UserView], error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Fail[domain.UserView](domain.FailureNotFound, msgUserNotFound), nil
		}
		return domain.Result[domain.UserView]{}, fmt.Errorf("get user: %w", err)
	}

	roles, err := s.store.GetRoles(ctx, user.ID)
	if err != nil {
		return domain.Result[domain.UserView]{}, fmt.Errorf("get user: load roles: %w", err)
	}

	view := user.View()
	view.Roles = roles
	return domain.Ok(view), nil
}

// GetUsersPaging returns one page of users, optionally filtered by a keyword
// matched against username, phone and email. An empty page is a success.
func (s *userService) GetUsersPaging(ctx context.Context, input ports.PagingInput) (domain.Result[domain.PagedResult[domain.UserView]], error) {
	type paged = domain.PagedResult[domain.UserView]

	if input.PageIndex < 1 || input.PageSize < 1 {
		return domain.Fail[paged](domain.FailureValidation, msgBadPaging), nil
	}

	total, err := s.store.CountMatching(ctx, input.Keyword)
	if err != nil {
		return domain.Result[paged]{}, fmt.Errorf("users paging: count: %w", err)
	}

	users, err := s.store.PageMatching(ctx, input.Keyword, (input.PageIndex-1)*input.PageSize, input.PageSize)
	if err != nil {
		return domain.Result[paged]{}, fmt.Errorf("users paging: %w", err)
	}

	items := make([]domain.UserView, 0, len(users))
	for _, u := range users {
		items = append(items, u.View())
	}

	return domain.Ok(paged{
		Items:        items,
		TotalRecords: total,
		PageIndex:    input.PageIndex,
		PageSize:     input.PageSize,
	}), nil
}

// AssignRoles reconciles the user's role membership against the selection.
// Removals fully complete before additions begin so a name present in both
// partitions cannot transiently flap; both directions are idempotent.
func (s *userService) AssignRoles(ctx context.Context, id string, selection []domain.RoleSelection) (domain.Result[bool], error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Fail[bool](domain.FailureNotFound, msgAccountNotFound), nil
		}
		return domain.Result[bool]{}, fmt.Errorf("assign roles: %w", err)
	}

	current, err := s.store.GetRoles(ctx, user.ID)
	if err != nil {
		return domain.Result[bool]{}, fmt.Errorf("assign roles: load roles: %w", err)
	}

	toAdd, toRemove := roleDelta(current, selection)

	for _, role := range toRemove {
		if err := s.store.RemoveFromRole(ctx, user.ID, role); err != nil {
			return domain.Result[bool]{}, fmt.Errorf("assign roles: remove %q: %w", role, err)
		}
	}
	for _, role := range toAdd {
		if err := s.store.AddToRole(ctx, user.ID, role); err != nil {
			return domain.Result[bool]{}, fmt.Errorf("assign roles: add %q: %w", role, err)
		}
	}

	s.log.Info().
		Str("user_id", id).
		Strs("added", toAdd).
		Strs("removed", toRemove).
		Msg("roles reconciled")

	return domain.Ok(true), nil
}
