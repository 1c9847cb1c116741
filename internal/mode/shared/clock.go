package shared

import (
	"fmt"
	"time"
)

// Clock provides the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FormatSince returns a short age such as "now", "12s ago", "5m ago" or
// "3h ago". The zero time reads "never".
func FormatSince(t time.Time, clock Clock) string {
	if t.IsZero() {
		return "never"
	}
	d := clock.Now().Sub(t)
	switch {
	case d < 2*time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
