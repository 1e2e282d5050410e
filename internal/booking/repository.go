package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing booking data from storage.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_date", "end_date", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := bookingSelect(psql).
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	sql, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildListQuery translates a Filter into SQL. Every listing, whatever its
// filter, comes back most recently starting first.
func buildListQuery(filter Filter) (string, []interface{}, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := bookingSelect(psql)

	if filter.BookerID != 0 {
		query = query.Where(squirrel.Eq{"b.booker_id": filter.BookerID})
	}
	if filter.OwnerID != 0 {
		query = query.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}
	if filter.ItemID != 0 {
		query = query.Where(squirrel.Eq{"b.item_id": filter.ItemID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.EndBefore != nil {
		query = query.Where(squirrel.Lt{"b.end_date": *filter.EndBefore})
	}
	if filter.StartAfter != nil {
		query = query.Where(squirrel.Gt{"b.start_date": *filter.StartAfter})
	}
	if filter.CurrentAt != nil {
		query = legacyCurrentWindow(query, *filter.CurrentAt)
	}

	return query.OrderBy("b.start_date DESC").ToSql()
}

// legacyCurrentWindow applies the CURRENT predicate the service has always
// shipped with: start strictly after t AND end strictly before t, which no
// well-formed interval can satisfy.
// TODO: confirm whether the intended window is start < t < end and fix here;
// the listing endpoints inherit the behavior from this single place.
func legacyCurrentWindow(q squirrel.SelectBuilder, t time.Time) squirrel.SelectBuilder {
	return q.
		Where(squirrel.Gt{"b.start_date": t}).
		Where(squirrel.Lt{"b.end_date": t})
}

func bookingSelect(psql squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name",
		"b.start_date", "b.end_date", "b.status", "b.created_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row, b *Booking) error {
	return row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt,
	)
}
