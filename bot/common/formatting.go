package common

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/shopspring/decimal"
)

// FormatBalance formats a whole amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)
	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}

	n := len(str)
	if n <= 3 {
		if negative {
			return "-" + str
		}
		return str
	}

	var result strings.Builder
	if negative {
		result.WriteRune('-')
	}
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// FormatAmount rounds a user-entered amount and formats it with thousand separators
func FormatAmount(amount float64) string {
	return FormatBalance(int64(math.Round(amount)))
}

// FormatUnits formats a bankroll balance with an explicit sign, e.g. "+2.85u"
func FormatUnits(units decimal.Decimal) string {
	if units.IsPositive() {
		return "+" + units.String() + "u"
	}
	return units.String() + "u"
}

// FormatTotals renders the all-time tally of a room
func FormatTotals(t models.RoomTotals) string {
	return fmt.Sprintf("Banker %d | Player %d | Tie %d (total %d)", t.Banker, t.Player, t.Tie, t.Total())
}

// FormatBankroll summarises the simulated result of following the engine
func FormatBankroll(s *models.BankrollSnapshot) string {
	if s == nil || s.Settled == 0 {
		return "Simulated P&L: no settled hands yet"
	}
	return fmt.Sprintf("Simulated P&L: %s | %dW %dL %dT | hit rate %.0f%%",
		FormatUnits(s.Balance), s.Wins, s.Losses, s.Pushes, s.HitRate())
}

// FormatExpiry renders an entitlement expiry in UTC, minute precision
func FormatExpiry(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04") + " UTC"
}
