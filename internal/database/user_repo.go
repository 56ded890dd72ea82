package database

import (
	"context"
	"database/sql"
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"pedidos-backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepo handles user database operations
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create creates a new user
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO "user" (nome, senha, admin) VALUES (?, ?, ?)`,
		user.Name, user.PasswordHash, user.IsAdmin,
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return ErrUserAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return nil
}

// GetByName retrieves a user by exact name
func (r *UserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	user := &models.User{}

	err := r.db.QueryRowContext(ctx,
		`SELECT userid, nome, senha, admin FROM "user" WHERE nome = ?`, name,
	).Scan(&user.ID, &user.Name, &user.PasswordHash, &user.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepo) UpdatePassword(ctx context.Context, name, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE "user" SET senha = ? WHERE nome = ?`, passwordHash, name)
	if err != nil {
		return err
	}

	ok, err := affected(result)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

// Count returns the total number of users
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "user"`).Scan(&count)
	return count, err
}
