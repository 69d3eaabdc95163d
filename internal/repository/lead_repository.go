package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/service"
	"github.com/fairyhunter13/surplus-deals/pkg/database"
)

// LeadRepository provides data access for leads using pgx.
type LeadRepository struct {
	pool PoolInterface
}

// NewLeadRepository creates a new LeadRepository with the given pool.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// NewLeadRepositoryWithPool creates a new LeadRepository with a custom pool interface.
// This is primarily used for testing.
func NewLeadRepositoryWithPool(pool PoolInterface) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// Insert appends a lead within a transaction and fills in its id and timestamp.
// Returns service.ErrAlreadyReserved if the idempotency key was already used
// for the same deal.
func (r *LeadRepository) Insert(ctx context.Context, tx database.TxQuerier, lead *model.Lead) error {
	query := `INSERT INTO leads (deal_id, shop, item, revenue, idempotency_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query, lead.DealID, lead.Shop, lead.Item, lead.Revenue, lead.IdempotencyKey).
		Scan(&lead.ID, &lead.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return service.ErrAlreadyReserved
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// Summary returns the total number of leads and the revenue they booked.
func (r *LeadRepository) Summary(ctx context.Context) (model.LeadSummary, error) {
	var s model.LeadSummary
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(revenue), 0) FROM leads`).Scan(&s.Count, &s.Revenue)
	if err != nil {
		return model.LeadSummary{}, fmt.Errorf("summarise leads: %w", err)
	}
	return s, nil
}

// ByShop returns lead counts and revenue per shop, busiest first.
func (r *LeadRepository) ByShop(ctx context.Context) ([]model.ShopLeads, error) {
	query := `SELECT shop, COUNT(*), COALESCE(SUM(revenue), 0)
		FROM leads GROUP BY shop ORDER BY COUNT(*) DESC, shop`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("group leads by shop: %w", err)
	}
	defer rows.Close()

	shops := []model.ShopLeads{}
	for rows.Next() {
		var s model.ShopLeads
		if err := rows.Scan(&s.Shop, &s.Leads, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan shop leads: %w", err)
		}
		shops = append(shops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shop lead rows: %w", err)
	}
	return shops, nil
}

// Recent returns the latest leads, newest first.
func (r *LeadRepository) Recent(ctx context.Context, limit int) ([]model.Lead, error) {
	query := `SELECT id, deal_id, shop, item, revenue, created_at
		FROM leads ORDER BY created_at DESC, id DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent leads: %w", err)
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.DealID, &l.Shop, &l.Item, &l.Revenue, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead rows: %w", err)
	}
	return leads, nil
}
