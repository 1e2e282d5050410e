package item

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository defines methods for accessing item comments.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]*Comment, error)
}

type pgxCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCommentRepository creates a new CommentRepository using pgxpool.
func NewPgxCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &pgxCommentRepository{
		pool: pool,
	}
}

func (r *pgxCommentRepository) Create(ctx context.Context, c *Comment) error {
	const query = `
		INSERT INTO public.comments (item_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, c.ItemID, c.AuthorID, c.Text).
		Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}

	return nil
}

func (r *pgxCommentRepository) ListByItem(ctx context.Context, itemID int64) ([]*Comment, error) {
	const query = `
		SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
		FROM public.comments c
		JOIN public.users u ON c.author_id = u.id
		WHERE c.item_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, &c)
	}

	return comments, nil
}
