package feed

import (
	jsoniter "github.com/json-iterator/go"

	"skyflip/internal/domain"
	"skyflip/internal/domain/entity"
	"skyflip/pkg/errcodes"
)

// The feed schema evolved over time and older senders still use historical
// field names. Each logical field resolves through an ordered alias list;
// the first key present wins.
//
//nolint:gochecknoglobals
var (
	itemNameKeys = []string{"itemName", "item", "name"}
	amountKeys   = []string{"amount", "count", "quantity"}
	priceKeys    = []string{"pricePerUnit", "unitPrice", "price"}
	bidKeys      = []string{"startingBid", "price"}
)

// ParseBazaarOrder normalizes a bazaar recommendation payload. Item name,
// amount and price are mandatory; everything else has a sane default.
func ParseBazaarOrder(data jsoniter.RawMessage) (entity.BazaarOrderRequest, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return entity.BazaarOrderRequest{}, err
	}

	itemName, ok := firstString(raw, itemNameKeys...)
	if !ok || itemName == "" {
		return entity.BazaarOrderRequest{}, domain.NewError(errcodes.MalformedEvent, "bazaar order missing item name")
	}

	amountFloat, ok := firstNumber(raw, amountKeys...)
	if !ok {
		return entity.BazaarOrderRequest{}, domain.NewError(errcodes.MalformedEvent, "bazaar order missing amount")
	}

	amount := int(amountFloat)
	if amount <= 0 {
		return entity.BazaarOrderRequest{}, domain.NewError(errcodes.MalformedEvent, "bazaar order amount must be positive")
	}

	pricePerUnit, ok := firstNumber(raw, priceKeys...)
	if !ok {
		return entity.BazaarOrderRequest{}, domain.NewError(errcodes.MalformedEvent, "bazaar order missing price")
	}

	if pricePerUnit < 0 {
		return entity.BazaarOrderRequest{}, domain.NewError(errcodes.MalformedEvent, "bazaar order price must not be negative")
	}

	order := entity.BazaarOrderRequest{
		ItemName:     itemName,
		Amount:       amount,
		PricePerUnit: pricePerUnit,
		IsBuyOrder:   resolveOrderDirection(raw),
	}

	if tag, ok := firstString(raw, "itemTag"); ok {
		order.ItemTag = tag
	}

	// An explicit total is trusted verbatim: the feed may have applied
	// fees or rounding we cannot reproduce.
	if total, ok := firstNumber(raw, "totalPrice"); ok {
		order.TotalPrice = total
	} else {
		order.TotalPrice = order.PricePerUnit * float64(order.Amount)
	}

	return order, nil
}

// ParseAuctionFlip normalizes an auction flip payload. The feed is
// best-effort for this category, so absent fields default instead of failing.
func ParseAuctionFlip(data jsoniter.RawMessage) (entity.AuctionFlipEvent, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return entity.AuctionFlipEvent{}, err
	}

	flip := entity.AuctionFlipEvent{
		IsBin: true,
	}

	if uuid, ok := firstString(raw, "uuid"); ok {
		flip.UUID = uuid
	}

	if itemName, ok := firstString(raw, itemNameKeys[:2]...); ok {
		flip.ItemName = itemName
	}

	if bid, ok := firstNumber(raw, bidKeys...); ok {
		flip.StartingBid = int64(bid)
	}

	if profit, ok := firstNumber(raw, "profit"); ok {
		flip.Profit = int64(profit)
	}

	if finder, ok := firstString(raw, "finder"); ok {
		flip.Finder = finder
	}

	if bin, ok := firstBool(raw, "bin"); ok {
		flip.IsBin = bin
	}

	if skin, ok := firstBool(raw, "skin"); ok {
		flip.IsSkin = skin
	}

	if percentage, ok := firstNumber(raw, "profitPercentage"); ok {
		flip.ProfitPercentage = int(percentage)
	}

	return flip, nil
}

type chatLine struct {
	Text string `json:"text"`
}

// ParseChatLines accepts a single chat record or an ordered sequence of them
// and returns the text lines in delivery order. Records without text are
// skipped.
func ParseChatLines(data jsoniter.RawMessage) ([]string, error) {
	records := []chatLine{}

	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, domain.WrapError(err, errcodes.MalformedEvent, "chat payload decode")
		}
	} else {
		var single chatLine
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, domain.WrapError(err, errcodes.MalformedEvent, "chat payload decode")
		}
		records = append(records, single)
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		if record.Text != "" {
			lines = append(lines, record.Text)
		}
	}

	return lines, nil
}

func decodeObject(data jsoniter.RawMessage) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.WrapError(err, errcodes.MalformedEvent, "payload decode")
	}
	return raw, nil
}

// Order direction resolution, newest schema first: explicit isBuyOrder flag,
// inverse of isSell, string type tag, then the historical default of buy.
func resolveOrderDirection(raw map[string]any) bool {
	if isBuy, ok := firstBool(raw, "isBuyOrder"); ok {
		return isBuy
	}

	if isSell, ok := firstBool(raw, "isSell"); ok {
		return !isSell
	}

	if orderType, ok := firstString(raw, "type"); ok {
		return orderType == "buy" || orderType == "BUY"
	}

	return true
}

func firstString(raw map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok {
			return value, true
		}
	}
	return "", false
}

func firstNumber(raw map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch value := raw[key].(type) {
		case float64:
			return value, true
		case int:
			return float64(value), true
		case int64:
			return float64(value), true
		}
	}
	return 0, false
}

func firstBool(raw map[string]any, keys ...string) (bool, bool) {
	for _, key := range keys {
		if value, ok := raw[key].(bool); ok {
			return value, true
		}
	}
	return false, false
}
