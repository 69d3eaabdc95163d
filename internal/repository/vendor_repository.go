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
)

// VendorRepository provides data access for vendor credentials using pgx.
type VendorRepository struct {
	pool PoolInterface
}

// NewVendorRepository creates a new VendorRepository with the given pool.
func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

// NewVendorRepositoryWithPool creates a new VendorRepository with a custom pool interface.
// This is primarily used for testing.
func NewVendorRepositoryWithPool(pool PoolInterface) *VendorRepository {
	return &VendorRepository{pool: pool}
}

// Insert stores new vendor credentials.
// Returns service.ErrVendorExists if the phone number is already registered.
func (r *VendorRepository) Insert(ctx context.Context, vendor *model.Vendor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO vendors (phone, pin_hash, shop) VALUES ($1, $2, $3) RETURNING created_at`,
		vendor.Phone, vendor.PINHash, vendor.Shop,
	).Scan(&vendor.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return service.ErrVendorExists
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByPhone looks a vendor up by exact phone number.
// Returns nil, nil if the vendor is not found.
func (r *VendorRepository) GetByPhone(ctx context.Context, phone string) (*model.Vendor, error) {
	var v model.Vendor
	err := r.pool.QueryRow(ctx,
		`SELECT phone, pin_hash, shop, created_at FROM vendors WHERE phone = $1`, phone,
	).Scan(&v.Phone, &v.PINHash, &v.Shop, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor by phone: %w", err)
	}
	return &v, nil
}
