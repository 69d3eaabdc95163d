// Package pricing maps days-until-expiry to a discount and applies it.
//
// Prices are integer minor units (paise). A ruleset is a list of thresholds
// checked in order; the first threshold the item's days fall under wins.
package pricing

import (
	"errors"
	"fmt"
	"math/bits"
)

// Ruleset names accepted by New.
const (
	FourTier = "four_tier"
	TwoTier  = "two_tier"
)

// MaxPrice is the largest original price FinalPrice accepts (one billion in
// major units).
const MaxPrice int64 = 100_000_000_000

var (
	// ErrExpired is returned for items with no days left; they cannot be sold.
	ErrExpired = errors.New("item expired")
	// ErrUnknownRuleset is returned by New for an unrecognised ruleset name.
	ErrUnknownRuleset = errors.New("unknown pricing ruleset")
	// ErrPriceOutOfRange is returned by FinalPrice for a negative original or
	// one above MaxPrice.
	ErrPriceOutOfRange = errors.New("price out of range")
)

type tier struct {
	maxDays int
	percent int
}

// Ruleset is an immutable discount table.
type Ruleset struct {
	name     string
	tiers    []tier
	fallback int
}

// New returns the named ruleset.
func New(name string) (*Ruleset, error) {
	switch name {
	case FourTier:
		return &Ruleset{
			name:     FourTier,
			tiers:    []tier{{maxDays: 1, percent: 80}, {maxDays: 3, percent: 50}, {maxDays: 7, percent: 10}},
			fallback: 0,
		}, nil
	case TwoTier:
		return &Ruleset{
			name:     TwoTier,
			tiers:    []tier{{maxDays: 2, percent: 50}},
			fallback: 20,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleset, name)
	}
}

// Name returns the ruleset name.
func (r *Ruleset) Name() string {
	return r.name
}

// Discount returns the percentage off for an item with the given days left.
func (r *Ruleset) Discount(days int) (int, error) {
	if days <= 0 {
		return 0, ErrExpired
	}
	for _, t := range r.tiers {
		if days <= t.maxDays {
			return t.percent, nil
		}
	}
	return r.fallback, nil
}

// Rate is Discount as a fraction, e.g. 0.8 for 80% off.
func (r *Ruleset) Rate(days int) (float64, error) {
	pct, err := r.Discount(days)
	if err != nil {
		return 0, err
	}
	return float64(pct) / 100, nil
}

// FinalPrice applies the discount for days to original and returns the
// discounted price together with the percentage used.
func (r *Ruleset) FinalPrice(original int64, days int) (int64, int, error) {
	if original < 0 || original > MaxPrice {
		return 0, 0, fmt.Errorf("%w: %d", ErrPriceOutOfRange, original)
	}
	pct, err := r.Discount(days)
	if err != nil {
		return 0, 0, err
	}
	return Apply(original, pct), pct, nil
}

// Apply takes pct percent off a non-negative price, rounding half-up to the
// minor unit. The whole and remainder hundreds are scaled separately so the
// intermediate product never exceeds price.
func Apply(price int64, pct int) int64 {
	keep := int64(100 - pct)
	return price/100*keep + (price%100*keep+50)/100
}

// PercentOff reports how much cheaper price is than original, rounded to the
// nearest whole percent. Prices above original yield 0.
func PercentOff(original, price int64) int {
	if original <= 0 || price >= original {
		return 0
	}
	if price < 0 {
		price = 0
	}
	hi, lo := bits.Mul64(uint64(original-price), 100)
	lo, carry := bits.Add64(lo, uint64(original/2), 0)
	q, _ := bits.Div64(hi+carry, lo, uint64(original))
	return int(q)
}

// Format renders a minor-unit amount as a decimal string, e.g. 2000 -> "20.00".
func Format(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
