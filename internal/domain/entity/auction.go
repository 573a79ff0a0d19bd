package entity

// AuctionFlipEvent is a single auction flip notification from the feed.
// Built fresh per inbound message, immutable afterwards, discarded once
// the handler is done with it.
type AuctionFlipEvent struct {
	UUID             string
	ItemName         string
	StartingBid      int64
	Profit           int64 // may be negative
	Finder           string
	IsBin            bool
	IsSkin           bool
	ProfitPercentage int
}
