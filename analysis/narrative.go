package analysis

import (
	"fmt"
	"math"

	"github.com/louisuxu-sys/BC-LINE/models"
)

const (
	derivedSummaryMin  = 3
	derivedTrendWindow = 5
)

// DerivedSummary describes the recent behaviour of one derived road.
// Roads shorter than three markers produce no line.
func DerivedSummary(kind models.DerivedRoadKind, markers []models.Marker) (string, bool) {
	if len(markers) < derivedSummaryMin {
		return "", false
	}

	redPct := percent(countRed(markers), len(markers))
	bluePct := 100 - redPct
	name := kind.Name()

	last3 := lastN(markers, 3)
	switch red3 := countRed(last3); {
	case red3 == len(last3):
		return fmt.Sprintf("%s: strong pattern, red %d%%, trend continues", name, redPct), true
	case red3 == 0:
		return fmt.Sprintf("%s: pattern breakdown, blue %d%%, trend may reverse", name, bluePct), true
	}

	switch red5 := countRed(lastN(markers, derivedTrendWindow)); {
	case red5 >= 4:
		return fmt.Sprintf("%s: stable trend, red %d%%", name, redPct), true
	case red5 <= 1:
		return fmt.Sprintf("%s: chaotic trend, blue %d%%", name, bluePct), true
	}
	return fmt.Sprintf("%s: red %d%% / blue %d%%", name, redPct, bluePct), true
}

type narrativeInput struct {
	estimate  ProbabilityEstimate
	ev        models.ExpectedValues
	accuracy  float64
	totals    models.RoomTotals
	streak    int
	lastValue models.Outcome
	patterns  []string
	derived   []string
}

func buildNarrative(in narrativeInput) []string {
	p := in.estimate.Probabilities
	reasons := []string{
		fmt.Sprintf("Probability: Banker %.1f%% / Player %.1f%% / Tie %.1f%%", p.Banker*100, p.Player*100, p.Tie*100),
		fmt.Sprintf("EV: Banker %+.4f / Player %+.4f / Tie %+.4f", in.ev.Banker, in.ev.Player, in.ev.Tie),
		fmt.Sprintf("Accuracy index: %.1f%%", in.accuracy),
		fmt.Sprintf("Shoe progress: %.0f%%", in.estimate.ShoeProgress*100),
	}

	bankerPct := 50
	if decided := in.totals.Banker + in.totals.Player; decided > 0 {
		bankerPct = percent(in.totals.Banker, decided)
	}
	reasons = append(reasons, fmt.Sprintf("History: Banker %d%% / Player %d%%", bankerPct, 100-bankerPct))

	if in.streak >= 2 {
		reasons = append(reasons, fmt.Sprintf("Current streak: %d %s", in.streak, in.lastValue.Label()))
	}
	reasons = append(reasons, in.patterns...)
	reasons = append(reasons, in.derived...)
	if len(in.patterns) == 0 && len(in.derived) == 0 {
		reasons = append(reasons, "No clear pattern yet, following the statistical trend")
	}
	return reasons
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(part) / float64(whole) * 100))
}
