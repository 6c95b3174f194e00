package repo

import (
	"context"
	"database/sql"

	"github.com/sbelkacem/gosocial/internal/models"
)

// PostStore abstracts the Post collection so the backend is swappable:
// Postgres in production, in-memory for tests and dev.
type PostStore interface {
	Create(ctx context.Context, userID int, text string) (models.Post, error)
	GetByID(ctx context.Context, id int) (models.Post, error)
	// UpdateText replaces the text of the post. Ownership is checked by the
	// handler against GetByID so a non-owner gets a 403, not a 404.
	UpdateText(ctx context.Context, id int, text string) (models.Post, error)
	// DeleteByIDAndOwner removes the post only when both id and owner match.
	DeleteByIDAndOwner(ctx context.Context, id, userID int) (models.Post, error)
	ListByOwner(ctx context.Context, userID int) ([]models.Post, error)
	CountByOwner(ctx context.Context, userID int) (int, error)
}

// ========================
// Postgres implementation
// ========================

type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

func (r *PostRepo) Create(ctx context.Context, userID int, text string) (models.Post, error) {
	var post models.Post
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO posts (user_id, text)
		 VALUES ($1, $2)
		 RETURNING id, user_id, text, created_at`,
		userID, text,
	).Scan(&post.ID, &post.UserID, &post.Text, &post.CreatedAt)
	return post, err
}

func (r *PostRepo) GetByID(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, text, created_at
		 FROM posts
		 WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.UserID, &post.Text, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Post{}, ErrNotFound
	}
	return post, err
}

func (r *PostRepo) UpdateText(ctx context.Context, id int, text string) (models.Post, error) {
	var post models.Post
	err := r.DB.QueryRowContext(ctx,
		`UPDATE posts
		 SET text = $1
		 WHERE id = $2
		 RETURNING id, user_id, text, created_at`,
		text, id,
	).Scan(&post.ID, &post.UserID, &post.Text, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Post{}, ErrNotFound
	}
	return post, err
}

func (r *PostRepo) DeleteByIDAndOwner(ctx context.Context, id, userID int) (models.Post, error) {
	var post models.Post
	err := r.DB.QueryRowContext(ctx,
		`DELETE FROM posts
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, text, created_at`,
		id, userID,
	).Scan(&post.ID, &post.UserID, &post.Text, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Post{}, ErrNotFound
	}
	return post, err
}

func (r *PostRepo) ListByOwner(ctx context.Context, userID int) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, text, created_at
		 FROM posts
		 WHERE user_id = $1
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepo) CountByOwner(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}
