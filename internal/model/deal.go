package model

import "time"

// Deal is a discounted food listing posted by a shop.
// Prices are in minor units (paise).
type Deal struct {
	ID              int64     `json:"id,string"`
	Item            string    `json:"item"`
	Shop            string    `json:"shop"`
	Location        string    `json:"location"`
	Category        string    `json:"category"`
	OldPrice        int64     `json:"old_price"`
	NewPrice        int64     `json:"new_price"`
	DiscountPercent int       `json:"discount_percent"`
	ImageURL        string    `json:"image_url"`
	Phone           string    `json:"phone"`
	Quantity        int       `json:"quantity"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateDealRequest is the DTO for posting a deal.
// Either DaysToExpiry with OldPrice, or Price, must be provided. The shop is
// always the posting vendor's registered shop.
type CreateDealRequest struct {
	Item         string `json:"item" validate:"required,notblank,max=255"`
	Location     string `json:"location" validate:"required,notblank,max=255"`
	Category     string `json:"category" validate:"omitempty,oneof=Cake Pizza Indian Burger Fruits"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	OldPrice     *int64 `json:"old_price" validate:"omitempty,gte=1,lte=100000000000"`
	Price        *int64 `json:"price" validate:"omitempty,gte=1,lte=100000000000"`
	DaysToExpiry *int   `json:"days_to_expiry"`
	ImageURL     string `json:"image_url" validate:"omitempty,url,max=2048"`
	Quantity     *int   `json:"quantity" validate:"required,gte=1,lte=10000"`
}

// Reservation is the outcome of reserving one unit of a deal.
type Reservation struct {
	Deal        Deal   `json:"deal"`
	Lead        Lead   `json:"lead"`
	WhatsAppURL string `json:"whatsapp_url"`
	MapsURL     string `json:"maps_url"`
}
