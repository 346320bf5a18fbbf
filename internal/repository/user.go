package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avivros/bookme/internal/domain/user"
)

const (
	getUserByNameSQL = `SELECT user_id, user_name, full_name, email, password
		FROM users WHERE user_name = $1`

	getUserByIDSQL = `SELECT user_id, user_name, full_name, email, password
		FROM users WHERE user_id = $1`

	createUserSQL = `INSERT INTO users (user_id, user_name, full_name, email, password)
		VALUES ($1, $2, $3, $4, $5)`

	updateUserSQL = `UPDATE users
		SET user_name = $2, full_name = $3, email = $4, password = $5
		WHERE user_id = $1`
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByUserName returns a single user by their unique username.
func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*user.User, error) {
	return r.getOne(ctx, getUserByNameSQL, userName)
}

// GetByID returns a single user by their identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getOne(ctx, getUserByIDSQL, id)
}

func (r *UserRepository) getOne(ctx context.Context, query, arg string) (*user.User, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("getting user %q: %w", arg, err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %q: %w", arg, err)
	}
	return &u, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx, createUserSQL,
		u.ID, u.UserName, u.FullName, u.Email, u.Password,
	)
	if err != nil {
		return fmt.Errorf("creating user %q: %w", u.UserName, err)
	}
	return nil
}

// Update rewrites all mutable fields of the user identified by ID.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.pool.Exec(ctx, updateUserSQL,
		u.ID, u.UserName, u.FullName, u.Email, u.Password,
	)
	if err != nil {
		return fmt.Errorf("updating user %q: %w", u.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.CollectableRow) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.UserName, &u.FullName, &u.Email, &u.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("scanning user row: %w", err)
	}
	return u, nil
}
