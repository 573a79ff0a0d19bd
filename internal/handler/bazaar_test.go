package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"skyflip/internal/domain/entity"
	"skyflip/internal/handler"
)

func testOrder() entity.BazaarOrderRequest {
	return entity.BazaarOrderRequest{
		ItemName:     "Enchanted Coal",
		Amount:       64,
		PricePerUnit: 1250,
		TotalPrice:   80_000,
		IsBuyOrder:   true,
	}
}

func TestBazaarHandleSuccess(t *testing.T) {
	rq := require.New(t)

	executor := &fakeExecutor{bazaarResult: true}
	notifier := &fakeNotifier{}
	display := &fakeDisplay{}

	h := handler.NewBazaar(executor, notifier, display)

	h.Handle(context.Background(), testOrder())

	rq.Equal([]string{"Enchanted Coal"}, executor.placedItems)
	rq.Len(notifier.placed, 1)
	rq.Equal(testOrder(), notifier.placed[0])
	rq.Empty(notifier.errors)
	rq.Contains(display.lines, "§aSuccessfully placed bazaar order!")
}

func TestBazaarHandleFailureNotifies(t *testing.T) {
	rq := require.New(t)

	executor := &fakeExecutor{bazaarResult: false}
	notifier := &fakeNotifier{}

	h := handler.NewBazaar(executor, notifier, &fakeDisplay{})

	order := testOrder()
	order.IsBuyOrder = false
	h.Handle(context.Background(), order)

	rq.Empty(notifier.placed)
	rq.Len(notifier.errors, 1)
	rq.Contains(notifier.errors[0], "sell offer")
	rq.Contains(notifier.errors[0], "Enchanted Coal")
}
