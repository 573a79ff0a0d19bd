package feed_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"skyflip/internal/domain"
	"skyflip/internal/domain/entity"
	"skyflip/internal/feed"
	"skyflip/pkg/errcodes"
)

func TestParseBazaarOrder(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    entity.BazaarOrderRequest
		wantErr bool
	}{
		{
			name:    "coflnet per piece price in price field",
			payload: `{"itemName":"Hyperion","amount":1,"price":5000000}`,
			want: entity.BazaarOrderRequest{
				ItemName:     "Hyperion",
				Amount:       1,
				PricePerUnit: 5_000_000,
				TotalPrice:   5_000_000,
				IsBuyOrder:   true,
			},
		},
		{
			name:    "all aliases oldest shape",
			payload: `{"name":"Enchanted Coal","quantity":64,"unitPrice":1250.5,"isSell":true}`,
			want: entity.BazaarOrderRequest{
				ItemName:     "Enchanted Coal",
				Amount:       64,
				PricePerUnit: 1250.5,
				TotalPrice:   1250.5 * 64,
				IsBuyOrder:   false,
			},
		},
		{
			name:    "first alias wins over later ones",
			payload: `{"itemName":"Wheat","item":"ignored","amount":2,"count":99,"pricePerUnit":10,"price":99}`,
			want: entity.BazaarOrderRequest{
				ItemName:     "Wheat",
				Amount:       2,
				PricePerUnit: 10,
				TotalPrice:   20,
				IsBuyOrder:   true,
			},
		},
		{
			name:    "explicit total price trusted verbatim",
			payload: `{"item":"Enchanted Lapis","count":160,"price":800,"totalPrice":127999}`,
			want: entity.BazaarOrderRequest{
				ItemName:     "Enchanted Lapis",
				Amount:       160,
				PricePerUnit: 800,
				TotalPrice:   127_999,
				IsBuyOrder:   true,
			},
		},
		{
			name:    "item tag and string type tag",
			payload: `{"itemName":"Booster Cookie","itemTag":"BOOSTER_COOKIE","amount":3,"price":2000000,"type":"BUY"}`,
			want: entity.BazaarOrderRequest{
				ItemName:     "Booster Cookie",
				ItemTag:      "BOOSTER_COOKIE",
				Amount:       3,
				PricePerUnit: 2_000_000,
				TotalPrice:   6_000_000,
				IsBuyOrder:   true,
			},
		},
		{
			name:    "sell via string type tag",
			payload: `{"itemName":"Booster Cookie","amount":3,"price":2000000,"type":"sell"}`,
			want: entity.BazaarOrderRequest{
				ItemName:     "Booster Cookie",
				Amount:       3,
				PricePerUnit: 2_000_000,
				TotalPrice:   6_000_000,
				IsBuyOrder:   false,
			},
		},
		{
			name:    "explicit flag beats isSell",
			payload: `{"itemName":"Wheat","amount":1,"price":5,"isBuyOrder":false,"isSell":false}`,
			want: entity.BazaarOrderRequest{
				ItemName:     "Wheat",
				Amount:       1,
				PricePerUnit: 5,
				TotalPrice:   5,
				IsBuyOrder:   false,
			},
		},
		{
			name:    "missing item name",
			payload: `{"amount":1,"price":100}`,
			wantErr: true,
		},
		{
			name:    "missing amount",
			payload: `{"itemName":"Wheat","price":100}`,
			wantErr: true,
		},
		{
			name:    "missing price",
			payload: `{"itemName":"Wheat","amount":1}`,
			wantErr: true,
		},
		{
			name:    "zero amount rejected",
			payload: `{"itemName":"Wheat","amount":0,"price":100}`,
			wantErr: true,
		},
		{
			name:    "negative price rejected",
			payload: `{"itemName":"Wheat","amount":1,"price":-5}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			payload: `[1,2,3]`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			order, err := feed.ParseBazaarOrder(jsoniter.RawMessage(tc.payload))

			if tc.wantErr {
				rq.Error(err)

				code, ok := domain.GetCode(err)
				rq.True(ok)
				rq.Equal(errcodes.MalformedEvent, code)

				return
			}

			rq.NoError(err)
			rq.Equal(tc.want, order)
		})
	}
}

func TestParseBazaarOrderDerivedTotalTolerance(t *testing.T) {
	rq := require.New(t)

	order, err := feed.ParseBazaarOrder(jsoniter.RawMessage(`{"itemName":"Enchanted Sugar","amount":7,"price":33.33}`))
	rq.NoError(err)
	rq.InDelta(7*33.33, order.TotalPrice, 1e-9)
}

func TestParseAuctionFlip(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    entity.AuctionFlipEvent
		wantErr bool
	}{
		{
			name: "full payload",
			payload: `{"uuid":"41a6cbf1","itemName":"Aspect of the Void","startingBid":7800000,` +
				`"profit":1200000,"finder":"USER","bin":true,"skin":false,"profitPercentage":15}`,
			want: entity.AuctionFlipEvent{
				UUID:             "41a6cbf1",
				ItemName:         "Aspect of the Void",
				StartingBid:      7_800_000,
				Profit:           1_200_000,
				Finder:           "USER",
				IsBin:            true,
				IsSkin:           false,
				ProfitPercentage: 15,
			},
		},
		{
			name:    "permissive defaults",
			payload: `{}`,
			want:    entity.AuctionFlipEvent{IsBin: true},
		},
		{
			name:    "item and price aliases",
			payload: `{"item":"Livid Dagger","price":350000}`,
			want: entity.AuctionFlipEvent{
				ItemName:    "Livid Dagger",
				StartingBid: 350_000,
				IsBin:       true,
			},
		},
		{
			name:    "explicit bin false",
			payload: `{"uuid":"x","bin":false,"skin":true}`,
			want: entity.AuctionFlipEvent{
				UUID:   "x",
				IsBin:  false,
				IsSkin: true,
			},
		},
		{
			name:    "negative profit preserved",
			payload: `{"uuid":"y","profit":-25000}`,
			want: entity.AuctionFlipEvent{
				UUID:   "y",
				Profit: -25_000,
				IsBin:  true,
			},
		},
		{
			name:    "undecodable payload",
			payload: `"just a string"`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			flip, err := feed.ParseAuctionFlip(jsoniter.RawMessage(tc.payload))

			if tc.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.want, flip)
		})
	}
}

func TestParseChatLines(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    []string
		wantErr bool
	}{
		{
			name:    "single record",
			payload: `{"text":"§aFlipper started"}`,
			want:    []string{"§aFlipper started"},
		},
		{
			name:    "sequence keeps order",
			payload: `[{"text":"first"},{"text":"second"},{"text":"third"}]`,
			want:    []string{"first", "second", "third"},
		},
		{
			name:    "records without text skipped",
			payload: `[{"text":"kept"},{"color":"gray"}]`,
			want:    []string{"kept"},
		},
		{
			name:    "undecodable",
			payload: `42`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			lines, err := feed.ParseChatLines(jsoniter.RawMessage(tc.payload))

			if tc.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.want, lines)
		})
	}
}
