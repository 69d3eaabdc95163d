package service

import "errors"

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPriceRequired is returned when a deal has neither a price nor days to expiry with an original price
	ErrPriceRequired = errors.New("price or days_to_expiry with old_price is required")

	// ErrInvalidPrice is returned when the discounted price exceeds the original price
	ErrInvalidPrice = errors.New("price cannot exceed old_price")

	// ErrPriceOutOfRange is returned for prices above the accepted maximum
	ErrPriceOutOfRange = errors.New("price out of range")

	// ErrDealExpired is returned when posting an item with no days left
	ErrDealExpired = errors.New("item expired")

	// ErrUnknownLocation is returned when a deal names a location outside the configured list
	ErrUnknownLocation = errors.New("unknown location")

	// ErrDealNotFound is returned when a deal cannot be found
	ErrDealNotFound = errors.New("deal not found")

	// ErrSoldOut is returned when a deal has no remaining quantity
	ErrSoldOut = errors.New("deal sold out")

	// ErrAlreadyReserved is returned when a reservation with the same idempotency key already exists
	ErrAlreadyReserved = errors.New("reservation already made")

	// ErrVendorExists is returned when registering a phone number that already has credentials
	ErrVendorExists = errors.New("vendor already exists")

	// ErrAccessDenied is returned for any credential mismatch
	ErrAccessDenied = errors.New("access denied")
)
