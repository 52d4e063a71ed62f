package ports

import (
	"context"

	"github.com/eshopsolution/admin-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	UserName string
	Password string
	Email    string
	Name     string
	Phone    string
}

// UpdateInput carries the mutable identity fields. UserName and ID are
// immutable and deliberately absent.
type UpdateInput struct {
	Email string
	Name  string
	Phone string
}

// PagingInput selects one page of the (optionally filtered) user collection.
// PageIndex is 1-based.
type PagingInput struct {
	Keyword   string
	PageIndex int
	PageSize  int
}

// UserService is the auth service boundary consumed by the HTTP layer.
// Expected business failures are reported through the Result; the error
// return is reserved for infrastructure faults.
type UserService interface {
	Authenticate(ctx context.Context, username, password string, rememberMe bool) (domain.Result[string], error)
	Register(ctx context.Context, input RegisterInput) (domain.Result[bool], error)
	Update(ctx context.Context, id string, input UpdateInput) (domain.Result[bool], error)
	Delete(ctx context.Context, id string) (domain.Result[bool], error)
	GetByID(ctx context.Context, id string) (domain.Result[domain.UserView], error)
	GetUsersPaging(ctx context.Context, input PagingInput) (domain.Result[domain.PagedResult[domain.UserView]], error)
	AssignRoles(ctx context.Context, id string, selection []domain.RoleSelection) (domain.Result[bool], error)
}
