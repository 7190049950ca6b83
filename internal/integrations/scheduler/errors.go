package scheduler

import (
	"errors"
	"fmt"
)

// UpstreamError carries the provider's HTTP status and raw payload so callers
// can log precisely what the provider said. It surfaces to API clients as a
// 502 via failure.BadGateway.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("scheduling provider returned status %d: %s", e.StatusCode, e.Body)
}

// IsUpstreamConflict reports whether the provider rejected a booking create
// because the slot was already taken.
func IsUpstreamConflict(err error) bool {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode == 409
	}

	return false
}
