package service

import (
	"fmt"

	"github.com/louisuxu-sys/BC-LINE/models"
)

const (
	// above this score rate a machine is paying far beyond its RTP
	highVolatilityRate = 110.0
	// a budget gap this large marks a machine as due for a big payback
	strongSpaceThreshold = 500000.0
)

type slotService struct{}

// NewSlotService creates a new slot advisor
func NewSlotService() SlotService {
	return &slotService{}
}

// Advise compares a machine's score rate against the fixed RTP
func (s *slotService) Advise(totalBet, scoreRate float64) (*models.SlotAdvice, error) {
	if totalBet < 0 || scoreRate < 0 {
		return nil, ErrInvalidAmount
	}

	expected := totalBet * models.SlotRTP / 100
	actual := totalBet * scoreRate / 100
	advice := &models.SlotAdvice{
		TotalBet:  totalBet,
		ScoreRate: scoreRate,
		Space:     expected - actual,
	}

	switch {
	case scoreRate >= models.SlotRTP && scoreRate > highVolatilityRate:
		advice.Level = models.SlotLevelHighVolatility
		advice.Title = "⚠️ High volatility"
		advice.Color = "#9B59B6"
		advice.Description = fmt.Sprintf("Today's score rate (%g%%) is far above expectation. The machine is in an extreme payout swing and may reverse at any time, play carefully.", scoreRate)
	case scoreRate >= models.SlotRTP:
		advice.Level = models.SlotLevelHotMachine
		advice.Title = "🌟 Hot machine"
		advice.Color = "#E67E22"
		advice.Description = "The machine is saturated but still has strong momentum. It is in a streak of big wins, follow with small bets and watch."
	case advice.Space >= strongSpaceThreshold:
		advice.Level = models.SlotLevelStronglyRecommend
		advice.Title = "🔥 Strongly recommended"
		advice.Color = "#FF4444"
		advice.Description = "The machine has built up a large budget and is in a big payback window. Explosive potential!"
	case advice.Space > 0:
		advice.Level = models.SlotLevelRecommend
		advice.Title = "✅ Recommended"
		advice.Color = "#2ECC71"
		advice.Description = "The machine is trending positive and still has room to compensate. Play steadily."
	default:
		advice.Level = models.SlotLevelWait
		advice.Title = "☁️ Wait"
		advice.Color = "#7F8C8D"
		advice.Description = "The numbers are close to balance. Switch rooms or wait for the next cycle."
	}
	return advice, nil
}
