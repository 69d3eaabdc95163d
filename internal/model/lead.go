package model

import "time"

// Lead records one successful reservation. Leads are append-only.
type Lead struct {
	ID             int64     `json:"id"`
	DealID         int64     `json:"deal_id,string"`
	Shop           string    `json:"shop"`
	Item           string    `json:"item"`
	Revenue        int64     `json:"revenue"`
	IdempotencyKey *string   `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// LeadSummary aggregates all leads.
type LeadSummary struct {
	Count   int64 `json:"count"`
	Revenue int64 `json:"revenue"`
}

// ShopLeads aggregates the leads of one shop.
type ShopLeads struct {
	Shop    string `json:"shop"`
	Leads   int64  `json:"leads"`
	Revenue int64  `json:"revenue"`
}

// Dashboard is the API response DTO for GET /api/admin/dashboard
type Dashboard struct {
	LeadCount    int64       `json:"lead_count"`
	TotalRevenue int64       `json:"total_revenue"`
	Shops        []ShopLeads `json:"shops"`
	RecentLeads  []Lead      `json:"recent_leads"`
}
