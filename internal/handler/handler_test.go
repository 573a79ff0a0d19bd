package handler_test

import (
	"context"
	"sync"

	"skyflip/internal/domain/entity"
)

type fakeExecutor struct {
	mu sync.Mutex

	auctionResult bool
	bazaarResult  bool
	panicMessage  string

	boughtUUIDs  []string
	skippedFlags []bool
	placedItems  []string
}

func (f *fakeExecutor) BuyAuctionItem(_ context.Context, uuid string, skipConfirmation bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.panicMessage != "" {
		panic(f.panicMessage)
	}

	f.boughtUUIDs = append(f.boughtUUIDs, uuid)
	f.skippedFlags = append(f.skippedFlags, skipConfirmation)
	return f.auctionResult
}

func (f *fakeExecutor) PlaceBazaarOrder(_ context.Context, itemName string, _ int, _ float64, _ bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.panicMessage != "" {
		panic(f.panicMessage)
	}

	f.placedItems = append(f.placedItems, itemName)
	return f.bazaarResult
}

type fakeNotifier struct {
	mu sync.Mutex

	purchased []entity.AuctionFlipEvent
	placed    []entity.BazaarOrderRequest
	errors    []string
}

func (f *fakeNotifier) SendAuctionPurchased(_ context.Context, flip entity.AuctionFlipEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchased = append(f.purchased, flip)
}

func (f *fakeNotifier) SendBazaarOrderPlaced(_ context.Context, order entity.BazaarOrderRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placed = append(f.placed, order)
}

func (f *fakeNotifier) SendError(_ context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, message)
}

type fakeDisplay struct {
	mu    sync.Mutex
	lines []string
}

func (f *fakeDisplay) Status(lines ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, lines...)
}
