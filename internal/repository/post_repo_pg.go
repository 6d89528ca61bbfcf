package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velopool/bikeshare/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	List(ctx context.Context) ([]domain.Post, error)
}

type PGPostRepository struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) PostRepository {
	return &PGPostRepository{db: db}
}

func (r *PGPostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := r.db.QueryRow(ctx, `INSERT INTO posts (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, (SELECT username FROM users WHERE id=$1)`,
		post.UserID, post.Title, post.Content).
		Scan(&post.ID, &post.CreatedAt, &post.Username)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *PGPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, `SELECT p.id, p.user_id, u.username, p.title, p.content, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

var _ PostRepository = (*PGPostRepository)(nil)
