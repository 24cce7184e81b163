package analysis

import (
	"testing"

	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPredict_InsufficientData(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		res := Predict(nil, nil)
		assert.Equal(t, models.SuggestInsufficientData, res.Suggestion)
		assert.False(t, res.HasSuggestion())
		assert.Equal(t, 50, res.Confidence)
		assert.Equal(t, models.ModeInsufficientData, res.Mode)
		assert.Equal(t, "observe", res.BetSize)
		assert.Equal(t, []string{"Not enough data yet, waiting for more results"}, res.Reasons)
		assert.Equal(t, BaseRates, res.Probabilities)
	})

	t.Run("ties only", func(t *testing.T) {
		res := Predict(seq("TTT"), nil)
		assert.Equal(t, models.SuggestInsufficientData, res.Suggestion)
		assert.Equal(t, 50, res.Confidence)
		assert.Equal(t, 18.0, res.Accuracy)
		assert.Greater(t, res.Probabilities.Tie, BaseRates.Tie)
	})
}

func TestPredict_LongStreak(t *testing.T) {
	res := Predict(seq("PBBBB"), nil)

	assert.Equal(t, models.SuggestBanker, res.Suggestion)
	assert.Equal(t, 92, res.Confidence)
	assert.Equal(t, models.ModeAggressiveLongStreak, res.Mode)
	assert.Equal(t, "3 units", res.BetSize)
	assert.Equal(t, 4, res.Streak)
	assert.Equal(t, 28.2, res.Accuracy)

	require.GreaterOrEqual(t, len(res.Reasons), 8)
	assert.Equal(t, "Probability: Banker 48.9% / Player 42.4% / Tie 8.7%", res.Reasons[0])
	assert.Equal(t, "EV: Banker +0.0410 / Player -0.0654 / Tie -0.2180", res.Reasons[1])
	assert.Equal(t, "Accuracy index: 28.2%", res.Reasons[2])
	assert.Equal(t, "Shoe progress: 6%", res.Reasons[3])
	assert.Equal(t, "History: Banker 80% / Player 20%", res.Reasons[4])
	assert.Equal(t, "Current streak: 4 Banker", res.Reasons[5])
	assert.Equal(t, "long-streak: 4 Banker in a row, the dragon keeps going", res.Reasons[6])
	assert.Equal(t, "Big Eye Boy: red 67% / blue 33%", res.Reasons[len(res.Reasons)-1])
}

func TestPredict_AlternatingPattern(t *testing.T) {
	res := Predict(seq("BPBPBP"), nil)

	// the weighted scores tie at 50 so the pattern confidence takes over
	assert.Equal(t, models.SuggestBanker, res.Suggestion)
	assert.Equal(t, 74, res.Confidence)
	assert.Equal(t, models.ModeFavorablePattern, res.Mode)
	assert.Equal(t, "1 unit", res.BetSize)
	assert.Equal(t, 1, res.Streak)

	assert.Contains(t, res.Reasons, "History: Banker 50% / Player 50%")
	assert.Contains(t, res.Reasons, "Big Eye Boy: strong pattern, red 100%, trend continues")
	assert.Contains(t, res.Reasons, "Small Road: strong pattern, red 100%, trend continues")
	for _, r := range res.Reasons {
		assert.NotContains(t, r, "Cockroach Road")
		assert.NotContains(t, r, "Current streak")
	}
	assert.True(t, hasLabel(res.Patterns, "single-jump"))
}

func TestPredict_TotalsOverrideHistoryLine(t *testing.T) {
	res := Predict(seq("PBBBB"), &models.RoomTotals{Banker: 1, Player: 3})
	assert.Contains(t, res.Reasons, "History: Banker 25% / Player 75%")
}

func TestPredict_NoSignalsFallback(t *testing.T) {
	res := Predict(seq("BP"), nil)
	assert.True(t, res.HasSuggestion())
	assert.Equal(t, "No clear pattern yet, following the statistical trend", res.Reasons[len(res.Reasons)-1])
}

func TestDerivedSummary(t *testing.T) {
	tests := []struct {
		name    string
		kind    models.DerivedRoadKind
		markers string
		want    string
		ok      bool
	}{
		{"too short", models.BigEyeRoad, "RR", "", false},
		{"strong", models.BigEyeRoad, "BRRR", "Big Eye Boy: strong pattern, red 75%, trend continues", true},
		{"breakdown", models.SmallRoad, "RBBB", "Small Road: pattern breakdown, blue 75%, trend may reverse", true},
		{"stable", models.CockroachRoad, "RRRBR", "Cockroach Road: stable trend, red 80%", true},
		{"chaotic", models.BigEyeRoad, "BBBRB", "Big Eye Boy: chaotic trend, blue 80%", true},
		{"plain", models.SmallRoad, "RBRBR", "Small Road: red 60% / blue 40%", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DerivedSummary(tt.kind, markers(tt.markers))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredictProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		history := historyGen().Draw(t, "history")
		res := Predict(history, nil)

		if len(Pure(history)) == 0 {
			if res.Suggestion != models.SuggestInsufficientData || res.Confidence != 50 {
				t.Fatalf("expected insufficient data, got %s at %d", res.Suggestion, res.Confidence)
			}
			return
		}
		if !res.HasSuggestion() {
			t.Fatalf("no side for %d decided hands", len(Pure(history)))
		}
		if res.Confidence < 50 || res.Confidence > 92 {
			t.Fatalf("confidence %d out of range", res.Confidence)
		}
		if len(res.Reasons) < 5 {
			t.Fatalf("only %d reasons", len(res.Reasons))
		}
	})
}
