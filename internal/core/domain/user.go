package domain

import (
	"errors"
	"time"
)

// RoleAdmin is the role required for administrative operations such as
// user management and catalog changes.
const RoleAdmin = "admin"

// User models a registered account. ID and UserName are immutable after
// creation; Update may only touch Email, Name and Phone.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"user_name"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserView is the outward projection of a User. It never carries the
// password credential.
type UserView struct {
	ID       string   `json:"id"`
	UserName string   `json:"user_name"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// View projects a User to its outward representation.
func (u *User) View() UserView {
	return UserView{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Name:     u.Name,
		Phone:    u.Phone,
		Roles:    u.Roles,
	}
}

// RoleSelection is the caller-supplied desired end-state of one role for an
// assignment request. It is request-scoped and never persisted.
type RoleSelection struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrEmailExists = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
