package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/surplus-deals/internal/catalog"
	"github.com/fairyhunter13/surplus-deals/internal/links"
	"github.com/fairyhunter13/surplus-deals/internal/metrics"
	"github.com/fairyhunter13/surplus-deals/internal/model"
	"github.com/fairyhunter13/surplus-deals/internal/pricing"
	"github.com/fairyhunter13/surplus-deals/pkg/database"
)

// DealRepositoryInterface defines the interface for deal data access.
type DealRepositoryInterface interface {
	Insert(ctx context.Context, deal *model.Deal) error
	GetByID(ctx context.Context, id int64) (*model.Deal, error)
	ListAvailable(ctx context.Context) ([]model.Deal, error)
	DecrementQuantity(ctx context.Context, tx database.TxQuerier, id int64) (*model.Deal, error)
	Exists(ctx context.Context, tx database.TxQuerier, id int64) (bool, error)
}

// LeadWriter defines the lead operations needed to record a reservation.
type LeadWriter interface {
	Insert(ctx context.Context, tx database.TxQuerier, lead *model.Lead) error
}

// VendorLookup resolves the vendor account behind a session.
type VendorLookup interface {
	GetByPhone(ctx context.Context, phone string) (*model.Vendor, error)
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IDGenerator issues unique deal ids.
type IDGenerator interface {
	Next() int64
}

// LeadNotifier is told about every committed lead.
type LeadNotifier interface {
	LeadCreated(ctx context.Context, lead model.Lead, deal model.Deal) error
}

// DealOptions holds the configurable rules of the marketplace.
type DealOptions struct {
	Pricing     *pricing.Ruleset
	Locations   catalog.Locations
	LeadRevenue int64
}

// DealService provides business logic for posting, listing and reserving deals.
type DealService struct {
	pool     TxBeginner
	deals    DealRepositoryInterface
	leads    LeadWriter
	vendors  VendorLookup
	ids      IDGenerator
	notifier LeadNotifier
	opts     DealOptions
}

// NewDealService creates a new DealService with the given pool and collaborators.
func NewDealService(pool *pgxpool.Pool, deals DealRepositoryInterface, leads LeadWriter, vendors VendorLookup, ids IDGenerator, notifier LeadNotifier, opts DealOptions) *DealService {
	return NewDealServiceWithTxBeginner(pool, deals, leads, vendors, ids, notifier, opts)
}

// NewDealServiceWithTxBeginner creates a DealService with a custom TxBeginner.
// Primarily used for testing.
func NewDealServiceWithTxBeginner(pool TxBeginner, deals DealRepositoryInterface, leads LeadWriter, vendors VendorLookup, ids IDGenerator, notifier LeadNotifier, opts DealOptions) *DealService {
	return &DealService{
		pool:     pool,
		deals:    deals,
		leads:    leads,
		vendors:  vendors,
		ids:      ids,
		notifier: notifier,
		opts:     opts,
	}
}

// Create posts a new deal on behalf of the vendor identified by vendorPhone,
// under that vendor's registered shop. Returns ErrPriceRequired,
// ErrInvalidPrice, ErrPriceOutOfRange, ErrDealExpired or ErrUnknownLocation
// for unusable submissions and ErrAccessDenied when the vendor account no longer exists.
func (s *DealService) Create(ctx context.Context, vendorPhone string, req *model.CreateDealRequest) (*model.Deal, error) {
	if req == nil || req.Quantity == nil {
		return nil, ErrInvalidRequest
	}

	location, ok := s.opts.Locations.Canonical(req.Location)
	if !ok {
		return nil, ErrUnknownLocation
	}

	oldPrice, newPrice, pct, err := s.price(req)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendors.GetByPhone(ctx, vendorPhone)
	if err != nil {
		return nil, fmt.Errorf("lookup vendor: %w", err)
	}
	if vendor == nil {
		return nil, ErrAccessDenied
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		phone = vendorPhone
	}
	image := strings.TrimSpace(req.ImageURL)
	if image == "" {
		image = catalog.PlaceholderImage(req.Category)
	}

	deal := &model.Deal{
		ID:              s.ids.Next(),
		Item:            strings.TrimSpace(req.Item),
		Shop:            vendor.Shop,
		Location:        location,
		Category:        req.Category,
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
		DiscountPercent: pct,
		ImageURL:        image,
		Phone:           phone,
		Quantity:        *req.Quantity,
	}
	if err := s.deals.Insert(ctx, deal); err != nil {
		return nil, fmt.Errorf("insert deal: %w", err)
	}

	metrics.RecordDealPosted()
	return deal, nil
}

// price resolves the original price, selling price and discount of a request.
// Days to expiry takes precedence; otherwise the seller's own price is used and
// the original defaults to twice that.
func (s *DealService) price(req *model.CreateDealRequest) (int64, int64, int, error) {
	if req.DaysToExpiry != nil {
		if req.OldPrice == nil {
			return 0, 0, 0, ErrPriceRequired
		}
		newPrice, pct, err := s.opts.Pricing.FinalPrice(*req.OldPrice, *req.DaysToExpiry)
		if err != nil {
			if errors.Is(err, pricing.ErrExpired) {
				return 0, 0, 0, ErrDealExpired
			}
			if errors.Is(err, pricing.ErrPriceOutOfRange) {
				return 0, 0, 0, ErrPriceOutOfRange
			}
			return 0, 0, 0, fmt.Errorf("apply pricing: %w", err)
		}
		return *req.OldPrice, newPrice, pct, nil
	}

	if req.Price == nil {
		return 0, 0, 0, ErrPriceRequired
	}
	newPrice := *req.Price
	if newPrice < 0 || newPrice > pricing.MaxPrice {
		return 0, 0, 0, ErrPriceOutOfRange
	}
	oldPrice := newPrice * 2
	if req.OldPrice != nil {
		if *req.OldPrice > pricing.MaxPrice {
			return 0, 0, 0, ErrPriceOutOfRange
		}
		oldPrice = *req.OldPrice
	}
	if newPrice > oldPrice {
		return 0, 0, 0, ErrInvalidPrice
	}
	return oldPrice, newPrice, pricing.PercentOff(oldPrice, newPrice), nil
}

// List returns the deals still in stock whose location matches query.
func (s *DealService) List(ctx context.Context, query string) ([]model.Deal, error) {
	deals, err := s.deals.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	return catalog.Filter(deals, query), nil
}

// Get retrieves a deal by id.
// Returns ErrDealNotFound if the deal doesn't exist.
func (s *DealService) Get(ctx context.Context, id int64) (*model.Deal, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get deal: %w", err)
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return deal, nil
}

// Reserve takes one unit of a deal and records a lead, atomically.
// idempotencyKey is optional; a repeated key is rejected without touching stock.
// Returns:
//   - ErrDealNotFound if the deal doesn't exist
//   - ErrSoldOut if the deal has no remaining quantity
//   - ErrAlreadyReserved if idempotencyKey was used before
func (s *DealService) Reserve(ctx context.Context, id int64, idempotencyKey string) (*model.Reservation, error) {
	start := time.Now()
	res, err := s.reserve(ctx, id, idempotencyKey)
	metrics.RecordReservation(reserveOutcome(err), time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	metrics.RecordLeadRevenue(res.Lead.Revenue)
	if err := s.notifier.LeadCreated(ctx, res.Lead, res.Deal); err != nil {
		log.Warn().Err(err).Int64("deal_id", id).Msg("failed to notify operator of lead")
	}
	return res, nil
}

func (s *DealService) reserve(ctx context.Context, id int64, idempotencyKey string) (*model.Reservation, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	// 1. Conditional decrement: only succeeds while quantity > 0
	deal, err := s.deals.DecrementQuantity(ctx, tx, id)
	if err != nil {
		if !errors.Is(err, ErrSoldOut) {
			return nil, fmt.Errorf("decrement quantity: %w", err)
		}
		exists, existsErr := s.deals.Exists(ctx, tx, id)
		if existsErr != nil {
			return nil, fmt.Errorf("check deal exists: %w", existsErr)
		}
		if !exists {
			return nil, ErrDealNotFound
		}
		return nil, ErrSoldOut
	}

	// 2. Record the lead (UNIQUE idempotency key catches double submits)
	lead := &model.Lead{
		DealID:  deal.ID,
		Shop:    deal.Shop,
		Item:    deal.Item,
		Revenue: s.opts.LeadRevenue,
	}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		lead.IdempotencyKey = &key
	}
	if err := s.leads.Insert(ctx, tx, lead); err != nil {
		if errors.Is(err, ErrAlreadyReserved) {
			return nil, ErrAlreadyReserved
		}
		return nil, fmt.Errorf("insert lead: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reservation: %w", err)
	}

	msg := links.ReservationMessage(deal.Shop, deal.Item, deal.NewPrice)
	return &model.Reservation{
		Deal:        *deal,
		Lead:        *lead,
		WhatsAppURL: links.WhatsApp(deal.Phone, msg),
		MapsURL:     links.Maps(deal.Shop, deal.Location),
	}, nil
}

func reserveOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeReserved
	case errors.Is(err, ErrSoldOut):
		return metrics.OutcomeSoldOut
	case errors.Is(err, ErrDealNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrAlreadyReserved):
		return metrics.OutcomeDuplicate
	default:
		return metrics.OutcomeError
	}
}
