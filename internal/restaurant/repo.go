// Package restaurant stores the restaurants orders are placed against and
// resolves their current owner.
package restaurant

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("restaurant not found")
)

type Repository interface {
	Create(ctx context.Context, r *Restaurant) error
	GetByID(ctx context.Context, id string) (*Restaurant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Restaurant, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, rs *Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO restaurants (id, name, address, owner_id, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,TRUE,NOW(),NOW())
		RETURNING is_active, created_at, updated_at
	`, rs.ID, rs.Name, rs.Address, rs.OwnerID).Scan(&rs.IsActive, &rs.CreatedAt, &rs.UpdatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rs Restaurant
	err := r.db.QueryRow(ctx, `
		SELECT id::text, name, address, owner_id, is_active, created_at, updated_at
		FROM restaurants WHERE id::text=$1
	`, id).Scan(&rs.ID, &rs.Name, &rs.Address, &rs.OwnerID, &rs.IsActive, &rs.CreatedAt, &rs.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id::text, name, address, owner_id, is_active, created_at, updated_at
		FROM restaurants
		WHERE owner_id=$1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var rs Restaurant
		if err := rows.Scan(&rs.ID, &rs.Name, &rs.Address, &rs.OwnerID, &rs.IsActive, &rs.CreatedAt, &rs.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}
