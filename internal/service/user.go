package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mkarhu/sauna-booking/internal/model"
	"github.com/mkarhu/sauna-booking/internal/repository"
	"github.com/mkarhu/sauna-booking/internal/utils"
)

// UserStore is the persistence abstraction for staff accounts.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, role string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id uint64, p model.UserPatch) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

// UserService manages staff accounts and credential checks.
type UserService struct {
	users      UserStore
	bcryptCost int
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, bcryptCost int) *UserService {
	if users == nil {
		panic("nil store passed to NewUserService")
	}
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserPage is a paginated list of accounts.
type UserPage struct {
	Data       []model.User `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// Authenticate verifies a username/password pair.  It returns (nil, nil)
// on unknown username or wrong password so the boundary can answer 401
// without distinguishing the two cases.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storagef("load user", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, nil
	}
	return u, nil
}

// Create registers a new account.  Role defaults to employee.
func (s *UserService) Create(ctx context.Context, username, password, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if role == "" {
		role = model.RoleEmployee
	}
	if !model.ValidRole(role) {
		return nil, &ValidationError{Msg: "Invalid role. Must be admin or employee"}
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, storagef("hash password", err)
	}
	id, err := s.users.Create(ctx, username, hash, role)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, &ValidationError{Msg: "Username already exists"}
		}
		return nil, storagef("create user", err)
	}
	return s.Get(ctx, id)
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id uint64) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Msg: "User not found"}
	}
	if err != nil {
		return nil, storagef("load user", err)
	}
	return u, nil
}

// List returns accounts with pagination metadata.
func (s *UserService) List(ctx context.Context, limit, offset int) (*UserPage, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, storagef("count users", err)
	}
	items, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, storagef("list users", err)
	}
	return &UserPage{Data: items, Pagination: paginate(total, limit, offset)}, nil
}

// Update changes username and/or role.
func (s *UserService) Update(ctx context.Context, id uint64, p model.UserPatch) (*model.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if p.Role != nil && !model.ValidRole(*p.Role) {
		return nil, &ValidationError{Msg: "Invalid role. Must be admin or employee"}
	}
	if err := s.users.Update(ctx, id, p); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, &ValidationError{Msg: "Username already exists"}
		}
		return nil, storagef("update user", err)
	}
	return s.Get(ctx, id)
}

// ResetPassword overwrites an account's password (admin operation).
func (s *UserService) ResetPassword(ctx context.Context, id uint64, newPassword string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return storagef("hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return storagef("reset password", err)
	}
	return nil
}

// ChangePassword lets an authenticated user rotate their own password
// after proving knowledge of the current one.
func (s *UserService) ChangePassword(ctx context.Context, id uint64, currentPassword, newPassword string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, currentPassword) {
		return &ValidationError{Msg: "Password change failed - current password incorrect"}
	}
	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return storagef("hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return storagef("change password", err)
	}
	return nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return storagef("delete user", err)
	}
	if !deleted {
		return &NotFoundError{Msg: "User not found"}
	}
	return nil
}
