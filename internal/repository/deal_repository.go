package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/service"
	"github.com/fairyhunter13/surplus-deals/pkg/database"
)

const dealColumns = `id, item, shop, location, category, old_price, new_price, discount_percent, image_url, phone, quantity, created_at`

// PoolInterface defines the database operations needed by repositories.
// This allows for easier testing with mocks.
type PoolInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// DealRepository provides data access for deals using pgx.
type DealRepository struct {
	pool PoolInterface
}

// NewDealRepository creates a new DealRepository with the given pool.
func NewDealRepository(pool *pgxpool.Pool) *DealRepository {
	return &DealRepository{pool: pool}
}

// NewDealRepositoryWithPool creates a new DealRepository with a custom pool interface.
// This is primarily used for testing.
func NewDealRepositoryWithPool(pool PoolInterface) *DealRepository {
	return &DealRepository{pool: pool}
}

func scanDeal(row rowScanner, deal *model.Deal) error {
	return row.Scan(
		&deal.ID,
		&deal.Item,
		&deal.Shop,
		&deal.Location,
		&deal.Category,
		&deal.OldPrice,
		&deal.NewPrice,
		&deal.DiscountPercent,
		&deal.ImageURL,
		&deal.Phone,
		&deal.Quantity,
		&deal.CreatedAt,
	)
}

// Insert inserts a new deal and fills in its creation time.
func (r *DealRepository) Insert(ctx context.Context, deal *model.Deal) error {
	query := `INSERT INTO deals (id, item, shop, location, category, old_price, new_price, discount_percent, image_url, phone, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		deal.ID, deal.Item, deal.Shop, deal.Location, deal.Category,
		deal.OldPrice, deal.NewPrice, deal.DiscountPercent,
		deal.ImageURL, deal.Phone, deal.Quantity,
	).Scan(&deal.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByID retrieves a deal by its id.
// Returns nil, nil if the deal is not found (service layer handles this).
func (r *DealRepository) GetByID(ctx context.Context, id int64) (*model.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`

	var deal model.Deal
	if err := scanDeal(r.pool.QueryRow(ctx, query, id), &deal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal by id %d: %w", id, err)
	}
	return &deal, nil
}

// ListAvailable returns the deals with stock left, newest first.
// On success, returns an empty slice (not nil) when nothing is available.
func (r *DealRepository) ListAvailable(ctx context.Context) ([]model.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE quantity > 0 ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list available deals: %w", err)
	}
	defer rows.Close()

	deals := []model.Deal{}
	for rows.Next() {
		var deal model.Deal
		if err := scanDeal(rows, &deal); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, deal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deal rows: %w", err)
	}

	return deals, nil
}

// DecrementQuantity takes one unit of a deal in a single conditional update,
// so concurrent reservations can never push quantity below zero.
// Returns the updated deal, or service.ErrSoldOut when no row qualified
// (out of stock or missing; the caller tells them apart).
func (r *DealRepository) DecrementQuantity(ctx context.Context, tx database.TxQuerier, id int64) (*model.Deal, error) {
	query := `UPDATE deals SET quantity = quantity - 1
		WHERE id = $1 AND quantity > 0
		RETURNING ` + dealColumns

	var deal model.Deal
	if err := scanDeal(tx.QueryRow(ctx, query, id), &deal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrSoldOut
		}
		return nil, fmt.Errorf("decrement quantity for %d: %w", id, err)
	}
	return &deal, nil
}

// Exists reports whether a deal with the given id exists.
func (r *DealRepository) Exists(ctx context.Context, tx database.TxQuerier, id int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM deals WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check deal %d exists: %w", id, err)
	}
	return exists, nil
}
