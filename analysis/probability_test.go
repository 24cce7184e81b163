package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEstimateProbabilities(t *testing.T) {
	t.Run("no hands returns the base rates exactly", func(t *testing.T) {
		est := EstimateProbabilities(nil)
		assert.Equal(t, 0.4586, est.Probabilities.Banker)
		assert.Equal(t, 0.4462, est.Probabilities.Player)
		assert.Equal(t, 0.0952, est.Probabilities.Tie)
		assert.Zero(t, est.ShoeProgress)
	})

	t.Run("banker heavy history favours banker", func(t *testing.T) {
		est := EstimateProbabilities(seq("PBBBB"))
		assert.InDelta(t, 0.48927, est.Probabilities.Banker, 1e-4)
		assert.InDelta(t, 0.42384, est.Probabilities.Player, 1e-4)
		assert.InDelta(t, 0.08689, est.Probabilities.Tie, 1e-4)
		assert.InDelta(t, 0.059375, est.ShoeProgress, 1e-9)
		assert.Equal(t, 5, est.TotalHands)
	})

	t.Run("shoe progress is capped with a card cut left", func(t *testing.T) {
		history := make([]byte, 0, 200)
		for range 200 {
			history = append(history, 'B')
		}
		est := EstimateProbabilities(seq(string(history)))
		assert.InDelta(t, 364.0/416.0, est.ShoeProgress, 1e-12)
	})
}

func TestExpectedValues(t *testing.T) {
	ev := ExpectedValues(BaseRates)
	assert.InDelta(t, 0.4586*0.95-0.4462, ev.Banker, 1e-12)
	assert.InDelta(t, 0.4462-0.4586, ev.Player, 1e-12)
	assert.InDelta(t, 0.0952*8-(1-0.0952), ev.Tie, 1e-12)
	assert.Equal(t, ev.Banker, ev.Best())
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		hands int
		want  float64
	}{
		{0, 0},
		{1, 10.1},
		{2, 15.3},
		{3, 18},
		{5, 28.2},
		{6, 30},
		{9, 48},
		{10, 50},
		{20, 82.9},
		{29, 94.3},
		{30, 95},
		{90, 95},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Accuracy(tt.hands), "hands=%d", tt.hands)
	}
}

func TestProbabilityProperties(t *testing.T) {
	t.Run("blended probabilities sum to one", rapid.MakeCheck(func(t *rapid.T) {
		est := EstimateProbabilities(historyGen().Draw(t, "history"))
		if math.Abs(est.Probabilities.Sum()-1) > 1e-9 {
			t.Fatalf("sum %v", est.Probabilities.Sum())
		}
	}))

	t.Run("accuracy is monotonic and bounded", rapid.MakeCheck(func(t *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(t, "hands")
		a, b := Accuracy(n), Accuracy(n+1)
		if a > b || a < 0 || b > 95 {
			t.Fatalf("accuracy(%d)=%v accuracy(%d)=%v", n, a, n+1, b)
		}
	}))
}
