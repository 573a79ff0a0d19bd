package entity

// BazaarOrderRequest describes one bazaar order recommended by the feed.
// Same lifecycle as AuctionFlipEvent: one message, one request.
type BazaarOrderRequest struct {
	ItemName     string
	ItemTag      string // optional
	Amount       int
	PricePerUnit float64
	// TotalPrice is trusted verbatim when the feed supplies it (fees or
	// rounding may apply upstream), otherwise PricePerUnit * Amount.
	TotalPrice float64
	IsBuyOrder bool
}

func (r BazaarOrderRequest) Side() string {
	if r.IsBuyOrder {
		return "BUY"
	}
	return "SELL"
}
