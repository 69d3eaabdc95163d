package model

import "time"

// Vendor is a shop account allowed to post deals.
type Vendor struct {
	Phone     string    `json:"phone"`
	PINHash   string    `json:"-"`
	Shop      string    `json:"shop"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterVendorRequest is the DTO for creating vendor credentials.
type RegisterVendorRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	PIN   string `json:"pin" validate:"required,pin"`
	Shop  string `json:"shop" validate:"required,notblank,max=255"`
}

// VendorLoginRequest is the DTO for vendor login.
type VendorLoginRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	PIN   string `json:"pin" validate:"required,pin"`
}

// AdminLoginRequest is the DTO for admin login.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginResponse carries a session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
