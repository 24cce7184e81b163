package service

import (
	"testing"

	"github.com/louisuxu-sys/BC-LINE/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotService_Advise(t *testing.T) {
	svc := NewSlotService()

	tests := []struct {
		name      string
		totalBet  float64
		scoreRate float64
		level     models.SlotLevel
		color     string
		space     float64
	}{
		{"far above rtp", 10000, 120, models.SlotLevelHighVolatility, "#9B59B6", -2311},
		{"above rtp", 10000, 100, models.SlotLevelHotMachine, "#E67E22", -311},
		{"exactly rtp", 10000, models.SlotRTP, models.SlotLevelHotMachine, "#E67E22", 0},
		{"large budget gap", 1000000, 40, models.SlotLevelStronglyRecommend, "#FF4444", 568900},
		{"some budget left", 10000, 50, models.SlotLevelRecommend, "#2ECC71", 4689},
		{"nothing bet", 0, 50, models.SlotLevelWait, "#7F8C8D", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, err := svc.Advise(tt.totalBet, tt.scoreRate)
			require.NoError(t, err)
			assert.Equal(t, tt.level, advice.Level)
			assert.Equal(t, tt.color, advice.Color)
			assert.InDelta(t, tt.space, advice.Space, 1e-6)
			assert.NotEmpty(t, advice.Title)
			assert.NotEmpty(t, advice.Description)
		})
	}

	t.Run("high volatility quotes the rate", func(t *testing.T) {
		advice, err := svc.Advise(10000, 123.5)
		require.NoError(t, err)
		assert.Contains(t, advice.Description, "123.5%")
	})

	t.Run("negative input", func(t *testing.T) {
		_, err := svc.Advise(-1, 50)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.Advise(100, -5)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
