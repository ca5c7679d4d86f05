package catalog

import (
	"time"

	"lessonbox/internal/civiltime"
	"lessonbox/internal/config"
)

// Policy decides whether a cached snapshot may still be served. Content is
// published once a day shortly after the refresh hour, so a plain TTL is
// not enough: yesterday's snapshot must die at today's boundary even if it
// is only a few hours old, and nothing fetched inside the publishing window
// can be trusted because publication may still be in progress.
type Policy struct {
	clock       civiltime.Clock
	maxAge      time.Duration
	refreshHour int
	windowStart int
	windowEnd   int
}

func NewPolicy(cfg config.RefreshConfig, maxAge time.Duration) Policy {
	return Policy{
		clock:       civiltime.NewClock(cfg.UTCOffsetHours),
		maxAge:      maxAge,
		refreshHour: cfg.Hour,
		windowStart: cfg.WindowStart,
		windowEnd:   cfg.WindowEnd,
	}
}

// Fresh reports whether entry may be reused at instant now under the given
// cache mode.
func (p Policy) Fresh(entry *CacheEntry, now time.Time, mode Mode) bool {
	if mode == ModeNetwork {
		return false
	}
	if entry == nil || entry.CreatedAt.IsZero() {
		return false
	}
	if now.Sub(entry.CreatedAt) > p.maxAge {
		return false
	}
	// Inside the publishing window nothing is trusted, including entries
	// created moments ago in the same window.
	if p.clock.Within(p.windowStart, p.windowEnd, now) {
		return false
	}

	boundary := p.clock.Boundary(p.refreshHour, now)
	if now.Before(boundary) {
		// Today's publication has not happened yet; anything created after
		// yesterday's boundary is still current.
		boundary = boundary.Add(-24 * time.Hour)
	}
	return !entry.CreatedAt.Before(boundary)
}

// Clock exposes the policy's civil clock for entry stamping.
func (p Policy) Clock() civiltime.Clock {
	return p.clock
}

// RefreshHour is the civil hour at which new content is published.
func (p Policy) RefreshHour() int {
	return p.refreshHour
}
