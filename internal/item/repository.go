package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing item data from storage.
type Repository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, i *Item) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error)
	Search(ctx context.Context, text string) ([]*Item, error)
}

type pgxItemRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxItemRepository{
		pool: pool,
	}
}

func (r *pgxItemRepository) Create(ctx context.Context, i *Item) error {
	const query = `
		INSERT INTO public.items (owner_id, name, description, available)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, i.OwnerID, i.Name, i.Description, i.Available).
		Scan(&i.ID, &i.CreatedAt); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}

	return nil
}

func (r *pgxItemRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	const query = `
		SELECT id, owner_id, name, description, available, created_at
		FROM public.items
		WHERE id = $1
	`

	var i Item
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available, &i.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}

	return &i, nil
}

func (r *pgxItemRepository) Update(ctx context.Context, i *Item) error {
	const query = `
		UPDATE public.items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`

	ct, err := r.pool.Exec(ctx, query, i.Name, i.Description, i.Available, i.ID)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error) {
	const query = `
		SELECT id, owner_id, name, description, available, created_at
		FROM public.items
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *pgxItemRepository) Search(ctx context.Context, text string) ([]*Item, error) {
	// Only available items participate in search.
	const query = `
		SELECT id, owner_id, name, description, available, created_at
		FROM public.items
		WHERE available = true
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, text)
	if err != nil {
		return nil, fmt.Errorf("search items failed: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]*Item, error) {
	var items []*Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &i)
	}
	return items, nil
}
