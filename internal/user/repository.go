package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const usernameConstraint = "users_username_key"

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]*User, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, username, password, role, name, created_at`

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	log := logger.FromCtx(ctx)

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, username, password, role, name) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		u.ID, u.Username, u.Password, u.Role, u.Name,
	).Scan(&u.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, usernameConstraint) {
			return nil, ErrUsernameExists
		}
		log.Error("db: failed to insert user",
			zap.String("username", u.Username),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	return u, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *repository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) ListByRole(ctx context.Context, role Role) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at`, role,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed ListByRole", zap.String("role", string(role)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
			name = COALESCE($3, name),
			password = COALESCE($4, password)
		WHERE id = $1
		RETURNING ` + userColumns

	var u User
	err := r.db.QueryRowContext(ctx, query, id, params.Username, params.Name, params.PasswordHash).
		Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if db.IsUniqueViolation(err, usernameConstraint) {
			return nil, ErrUsernameExists
		}
		logger.FromCtx(ctx).Error("failed to update user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
