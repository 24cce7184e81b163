package models

import (
	"strings"
	"time"
)

// AccessState describes whether a user may use the prediction features
type AccessState string

const (
	AccessActive  AccessState = "active"
	AccessExpired AccessState = "expired"
	AccessNone    AccessState = "none"
)

// AccessStatus is the resolved entitlement of a user at a moment in time
type AccessStatus struct {
	State     AccessState
	Remaining string
	ExpiresAt *time.Time
	Permanent bool
}

// IsActive reports whether the user currently has access
func (s AccessStatus) IsActive() bool {
	return s.State == AccessActive
}

// Entitlement is a user's paid access window
type Entitlement struct {
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CodeDuration is the access period granted by a redemption code
type CodeDuration string

const (
	CodeDuration10Minutes CodeDuration = "10M"
	CodeDuration1Hour     CodeDuration = "1H"
	CodeDuration2Days     CodeDuration = "2D"
	CodeDuration7Days     CodeDuration = "7D"
	CodeDuration12Days    CodeDuration = "12D"
	CodeDuration30Days    CodeDuration = "30D"
)

// ValidCodeDurations lists every duration an admin may issue, shortest first
var ValidCodeDurations = []CodeDuration{
	CodeDuration10Minutes,
	CodeDuration1Hour,
	CodeDuration2Days,
	CodeDuration7Days,
	CodeDuration12Days,
	CodeDuration30Days,
}

// ParseCodeDuration accepts a duration key in any case
func ParseCodeDuration(s string) (CodeDuration, bool) {
	d := CodeDuration(strings.ToUpper(strings.TrimSpace(s)))
	for _, valid := range ValidCodeDurations {
		if d == valid {
			return d, true
		}
	}
	return "", false
}

// Duration returns the wall-clock length of the access period
func (d CodeDuration) Duration() time.Duration {
	switch d {
	case CodeDuration10Minutes:
		return 10 * time.Minute
	case CodeDuration1Hour:
		return time.Hour
	case CodeDuration2Days:
		return 2 * 24 * time.Hour
	case CodeDuration7Days:
		return 7 * 24 * time.Hour
	case CodeDuration12Days:
		return 12 * 24 * time.Hour
	case CodeDuration30Days:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// Label returns a human readable period
func (d CodeDuration) Label() string {
	switch d {
	case CodeDuration10Minutes:
		return "10 minutes"
	case CodeDuration1Hour:
		return "1 hour"
	case CodeDuration2Days:
		return "2 days"
	case CodeDuration7Days:
		return "7 days"
	case CodeDuration12Days:
		return "12 days"
	case CodeDuration30Days:
		return "30 days"
	default:
		return string(d)
	}
}

// RedemptionCode is a one-time code that extends a user's entitlement
type RedemptionCode struct {
	Code      string       `db:"code"`
	Duration  CodeDuration `db:"duration"`
	BatchID   string       `db:"batch_id"`
	CreatedAt time.Time    `db:"created_at"`
	UsedBy    *string      `db:"used_by"`
	UsedAt    *time.Time   `db:"used_at"`
}

// IsUsed reports whether the code has already been redeemed
func (c *RedemptionCode) IsUsed() bool {
	return c.UsedBy != nil
}
