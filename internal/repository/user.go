package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tasktracker/tasktracker-go/internal/model"
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := "INSERT INTO `user` (login, password, created_at) VALUES (?, ?, ?)"

	result, err := r.db.ExecContext(ctx, query, user.Login, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateLogin
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

// GetByLogin retrieves a user by login.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	query := "SELECT id, login, password, created_at FROM `user` WHERE login = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, login))
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := "SELECT id, login, password, created_at FROM `user` WHERE id = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Login, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
