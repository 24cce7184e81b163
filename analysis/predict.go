package analysis

import "github.com/louisuxu-sys/BC-LINE/models"

const (
	insufficientConfidence = 50
	insufficientReason     = "Not enough data yet, waiting for more results"
)

// Predict runs the full engine over a raw history, ties included.
// When totals is nil the statistics line is computed from the history itself.
func Predict(history []models.Outcome, totals *models.RoomTotals) models.PredictionResult {
	pure := Pure(history)
	estimate := EstimateProbabilities(history)
	accuracy := Accuracy(len(history))
	ev := ExpectedValues(estimate.Probabilities)

	if len(pure) == 0 {
		return models.PredictionResult{
			Suggestion:    models.SuggestInsufficientData,
			Confidence:    insufficientConfidence,
			BetSize:       models.ModeInsufficientData.BetSize(),
			Mode:          models.ModeInsufficientData,
			Reasons:       []string{insufficientReason},
			Accuracy:      accuracy,
			Probabilities: estimate.Probabilities,
			EV:            ev,
			ShoeProgress:  estimate.ShoeProgress,
		}
	}

	cols := Runs(pure)
	derived := BuildDerivedRoads(cols)
	pattern := DetectPatterns(pure)
	streak := CurrentStreak(pure)
	last := pure[len(pure)-1]

	var derivedLines []string
	for _, kind := range models.DerivedRoadKinds {
		if line, ok := DerivedSummary(kind, derived.Road(kind)); ok {
			derivedLines = append(derivedLines, line)
		}
	}

	decision := decide(decisionInput{
		lastOutcome:   last,
		probabilities: estimate.Probabilities,
		ev:            ev,
		pattern:       pattern,
		derived:       derived,
		accuracy:      accuracy,
	})

	stats := models.CountOutcomes(history)
	if totals != nil {
		stats = *totals
	}

	mode := chooseMode(streak, ev, len(pattern.Labels) > 0 || len(derivedLines) > 0)

	return models.PredictionResult{
		Suggestion: models.SuggestionFor(decision.Side),
		Confidence: decision.Confidence,
		BetSize:    mode.BetSize(),
		Mode:       mode,
		Reasons: buildNarrative(narrativeInput{
			estimate:  estimate,
			ev:        ev,
			accuracy:  accuracy,
			totals:    stats,
			streak:    streak,
			lastValue: last,
			patterns:  pattern.Labels,
			derived:   derivedLines,
		}),
		Accuracy:      accuracy,
		Probabilities: estimate.Probabilities,
		EV:            ev,
		ShoeProgress:  estimate.ShoeProgress,
		Streak:        streak,
		Patterns:      pattern.Labels,
	}
}
