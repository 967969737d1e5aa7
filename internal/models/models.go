package models

// ReservationStats aggregates the ledger by status. Revenue sums the fixed
// total_price of confirmed and completed reservations.
type ReservationStats struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	Confirmed    int64 `json:"confirmed"`
	Cancelled    int64 `json:"cancelled"`
	Completed    int64 `json:"completed"`
	TotalRevenue int64 `json:"total_revenue"`
}

// Session is an authenticated admin session stored under its token.
type Session struct {
	Token     string `json:"token"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}
