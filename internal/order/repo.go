package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	// UpdateStatus writes the new status only if the stored version still
	// equals version. It returns ErrConflict otherwise.
	UpdateStatus(ctx context.Context, id string, version int, status Status, reason string) (*Order, error)
}

type PGRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPGRepo(db *pgxpool.Pool) *PGRepo {
	return &PGRepo{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

var orderColumns = []string{
	"id::text", "restaurant_id::text", "restaurant_name", "customer_id",
	"total_amount::text", "address", "status", "cancellation_reason",
	"version", "created_at", "updated_at",
}

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total string
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (id, restaurant_id, restaurant_name, customer_id, total_amount,
		                    address, status, cancellation_reason, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5::numeric,$6,$7,'',1,NOW(),NOW())
		RETURNING total_amount::text, version, created_at, updated_at
	`, o.ID, o.RestaurantID, o.RestaurantName, o.CustomerID, o.TotalAmount.String(),
		o.Address, string(o.Status)).Scan(&total, &o.Version, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return fmt.Errorf("order %s: total %q: %w", o.ID, total, err)
	}

	ins := r.sb.Insert("order_items").
		Columns("id", "order_id", "position", "menu_item_id", "item_name", "quantity", "size")
	for i, it := range o.Items {
		ins = ins.Values(it.ID, o.ID, i, it.MenuItemID, it.ItemName, it.Quantity, it.Size)
	}
	q, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := tx.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q, args, err := r.sb.Select(orderColumns...).From("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(r.db.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Order, error) {
	limit, offset := f.Limit, f.Offset
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sel := r.sb.Select(orderColumns...).From("orders")
	if f.CustomerID != "" {
		sel = sel.Where(sq.Eq{"customer_id": f.CustomerID})
	}
	if f.RestaurantIDs != nil {
		ids := validUUIDs(f.RestaurantIDs)
		if len(ids) == 0 {
			return []Order{}, nil
		}
		sel = sel.Where(sq.Eq{"restaurant_id": ids})
	}
	if f.Status != "" {
		sel = sel.Where(sq.Eq{"status": string(f.Status)})
	}
	q, args, err := sel.OrderBy("created_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*Order, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := r.attachItems(ctx, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, version int, status Status, reason string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $3, cancellation_reason = $4, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`, id, version, string(status), reason)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}
	return r.GetByID(ctx, id)
}

func (r *PGRepo) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Items = []Item{}
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id::text, order_id::text, menu_item_id, item_name, quantity, size
		FROM order_items
		WHERE order_id::text = ANY($1)
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		var orderID string
		if err := rows.Scan(&it.ID, &orderID, &it.MenuItemID, &it.ItemName, &it.Quantity, &it.Size); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o      Order
		total  string
		status string
	)
	if err := row.Scan(&o.ID, &o.RestaurantID, &o.RestaurantName, &o.CustomerID, &total,
		&o.Address, &status, &o.CancellationReason, &o.Version, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("order %s: total %q: %w", o.ID, total, err)
	}
	o.TotalAmount = amount
	o.Status = Status(status)
	return &o, nil
}

func validUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}
