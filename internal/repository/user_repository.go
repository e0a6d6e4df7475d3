package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mkarhu/sauna-booking/internal/model"
)

// ErrUsernameExists is returned when an insert or update collides with the
// unique username index.
var ErrUsernameExists = errors.New("username already exists")

// UserRepo provides CRUD operations for staff accounts.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user with a pre-hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash, role string) (uint64, error) {
	username = strings.TrimSpace(username)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password, role) VALUES (?, ?, ?)`,
		username, passwordHash, role)
	if err != nil {
		// MySQL duplicate-key errors carry code 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password, role, created_at FROM users WHERE username = ? LIMIT 1`,
		strings.TrimSpace(username)).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password, role, created_at FROM users WHERE id = ? LIMIT 1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns users ordered by id.  limit <= 0 disables pagination.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	q := `SELECT id, username, password, role, created_at FROM users ORDER BY id ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Count returns the total number of accounts.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// Update applies a typed patch to username and role.
func (r *UserRepo) Update(ctx context.Context, id uint64, p model.UserPatch) error {
	if p.Username == nil && p.Role == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = COALESCE(?, username), role = COALESCE(?, role) WHERE id = ?`,
		p.Username, p.Role, id)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrUsernameExists
	}
	return err
}

// UpdatePassword overwrites a user's password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET password = ? WHERE id = ?`, passwordHash, id)
	return err
}

// Delete removes a user row and reports whether a row was deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
