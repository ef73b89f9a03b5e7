package lib

import "errors"

// Storefront errors: user-visible, non-fatal conditions
var (
	ErrOutOfStock        = errors.New("out of stock")
	ErrNoVariantSelected = errors.New("no variant selected")
	ErrPriceUnavailable  = errors.New("price unavailable")
	ErrToggleInFlight    = errors.New("wishlist toggle already in flight")
)

// Auth errors
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrInvalidToken = errors.New("invalid token")
)

// Upstream errors
var (
	ErrNotFound = errors.New("not found")
	ErrUpstream = errors.New("upstream request failed")
	// ErrServiceBusy marks a quota/billing/rate-limit signal from the chat
	// collaborator; it degrades to the contact channel instead of a bare
	// error.
	ErrServiceBusy = errors.New("service temporarily unavailable")
)
