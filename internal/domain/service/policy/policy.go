package policy

import (
	"fmt"

	"skyflip/internal/config"
	"skyflip/internal/domain/entity"
)

// ShouldSkipConfirmation reports whether an auction flip can be bought
// without the manual confirmation step. Criteria are disjunctive ORs, so
// evaluation order only matters for the returned reason, which names the
// first criterion that fired and is meant for logging.
func ShouldSkipConfirmation(flip entity.AuctionFlipEvent, skip config.Skip) (bool, string) {
	switch {
	case skip.Always:
		return true, "always enabled"
	case flip.Profit >= skip.MinProfit:
		return true, fmt.Sprintf("profit %d >= %d", flip.Profit, skip.MinProfit)
	case flip.ProfitPercentage >= skip.ProfitPercentage:
		return true, fmt.Sprintf("profit %d%% >= %d%%", flip.ProfitPercentage, skip.ProfitPercentage)
	case flip.StartingBid >= skip.MinPrice:
		return true, fmt.Sprintf("price %d >= %d", flip.StartingBid, skip.MinPrice)
	case skip.UserFinder && flip.Finder == "USER":
		return true, "USER finder"
	case skip.Skins && flip.IsSkin:
		return true, "is skin"
	}

	return false, ""
}
