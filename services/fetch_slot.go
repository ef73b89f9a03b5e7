package services

import (
	"context"
	"sync"
)

type slotEntry struct {
	cancel context.CancelFunc
}

// FetchCoordinator serializes fetches that are tied to a viewed entity.
// Each slot (e.g. "session 123 viewing a product") holds at most one
// in-flight fetch; starting a new fetch on a slot cancels the previous one
// so a stale response can never overwrite newer state: last-requested
// wins, not last-arrived.
type FetchCoordinator struct {
	mu       sync.Mutex
	inflight map[string]*slotEntry
}

func NewFetchCoordinator() *FetchCoordinator {
	return &FetchCoordinator{
		inflight: make(map[string]*slotEntry),
	}
}

// Begin registers a fetch for the slot, cancelling whatever was in flight
// there. The returned context is cancelled either by the returned release
// function or by a later Begin on the same slot. Callers must invoke
// release when the fetch finishes.
func (fc *FetchCoordinator) Begin(parent context.Context, slot string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	entry := &slotEntry{cancel: cancel}

	fc.mu.Lock()
	if prev, ok := fc.inflight[slot]; ok {
		prev.cancel()
	}
	fc.inflight[slot] = entry
	fc.mu.Unlock()

	release := func() {
		fc.mu.Lock()
		// Only clear the slot if it still belongs to this fetch; a
		// newer Begin may have replaced it already.
		if current, ok := fc.inflight[slot]; ok && current == entry {
			delete(fc.inflight, slot)
		}
		fc.mu.Unlock()
		cancel()
	}

	return ctx, release
}

// InFlight reports whether the slot currently has an active fetch.
func (fc *FetchCoordinator) InFlight(slot string) bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	_, ok := fc.inflight[slot]
	return ok
}
