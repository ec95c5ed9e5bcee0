package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tasktracker/tasktracker-go/internal/model"
)

// PostRepository handles post persistence operations.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const selectPost = "SELECT p.id, p.title, p.description, p.posted_at, p.user_id, u.login " +
	"FROM post p JOIN `user` u ON u.id = p.user_id"

// Create inserts a post owned by post.OwnerID and sets its generated ID.
// A missing owner fails the foreign key check with ErrConstraintViolation.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO post (title, description, posted_at, user_id) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, post.Title, post.Description, post.PostedAt, post.OwnerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrConstraintViolation
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	post.ID = id
	return nil
}

// GetByID retrieves a post with its owner's login.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx, selectPost+" WHERE p.id = ?", id).Scan(
		&post.ID, &post.Title, &post.Description, &post.PostedAt, &post.OwnerID, &post.OwnerLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListRecent retrieves all posts, newest first. Posts stamped with the same
// time come back in reverse insertion order.
func (r *PostRepository) ListRecent(ctx context.Context) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPost+" ORDER BY p.posted_at DESC, p.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.PostedAt, &p.OwnerID, &p.OwnerLogin,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// Delete removes a post by ID.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}
