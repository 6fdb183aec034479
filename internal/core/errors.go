package core

import "errors"

var (
	// ErrInvalidInput is returned for empty or missing message text,
	// before any signal is computed.
	ErrInvalidInput = errors.New("message text is empty")

	// ErrModelUnavailable is returned when the classifier cannot produce
	// a probability. The request fails outright.
	ErrModelUnavailable = errors.New("classifier unavailable")

	// ErrStoreUnavailable is returned when a signature increment fails.
	// Classification lookups degrade instead of returning this.
	ErrStoreUnavailable = errors.New("signature store unavailable")
)
