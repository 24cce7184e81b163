package service

import (
	"fmt"
	"time"
)

// PermanentLabel is shown instead of a remaining time for admins
const PermanentLabel = "permanent"

// FormatRemaining renders a positive duration as whole days and hours, e.g. "6d 23h"
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)
	return fmt.Sprintf("%dd %dh", days, hours)
}

// ExtendFrom returns the new expiry when adding d to an entitlement.
// Time left on an active entitlement is kept; an expired one restarts from now.
func ExtendFrom(now time.Time, current *time.Time, d time.Duration) time.Time {
	base := now
	if current != nil && current.After(now) {
		base = *current
	}
	return base.Add(d)
}
