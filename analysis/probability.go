package analysis

import (
	"math"

	"github.com/louisuxu-sys/BC-LINE/models"
)

// BaseRates are the theoretical outcome probabilities of an 8-deck shoe
var BaseRates = models.Probabilities{Banker: 0.4586, Player: 0.4462, Tie: 0.0952}

const (
	observedWeightHands = 60.0
	observedWeightCap   = 0.7

	cardsPerHand      = 4.94
	shoeCards         = 416.0
	minRemainingCards = 52.0
	shoeBoostFactor   = 0.15

	bankerPayout = 0.95
	playerPayout = 1.0
	tiePayout    = 8.0
)

// ProbabilityEstimate is the blended outcome distribution for a history
type ProbabilityEstimate struct {
	Probabilities models.Probabilities
	ShoeProgress  float64
	TotalHands    int
}

// EstimateProbabilities blends the base rates with the observed frequencies of a
// history and nudges the over-performing sides upwards as the shoe depletes.
// The result always sums to one.
func EstimateProbabilities(history []models.Outcome) ProbabilityEstimate {
	total := len(history)
	if total == 0 {
		return ProbabilityEstimate{Probabilities: BaseRates}
	}

	counts := models.CountOutcomes(history)
	n := float64(total)
	observed := models.Probabilities{
		Banker: float64(counts.Banker) / n,
		Player: float64(counts.Player) / n,
		Tie:    float64(counts.Tie) / n,
	}

	w := math.Min(n/observedWeightHands, observedWeightCap)
	blend := func(base, obs float64) float64 {
		return base*(1-w) + obs*w
	}
	p := models.Probabilities{
		Banker: blend(BaseRates.Banker, observed.Banker),
		Player: blend(BaseRates.Player, observed.Player),
		Tie:    blend(BaseRates.Tie, observed.Tie),
	}

	consumed := math.Min(n*cardsPerHand, shoeCards-minRemainingCards)
	progress := consumed / shoeCards
	boost := 1 + progress*shoeBoostFactor
	if observed.Banker > BaseRates.Banker {
		p.Banker *= boost
	}
	if observed.Player > BaseRates.Player {
		p.Player *= boost
	}

	sum := math.Max(p.Sum(), math.SmallestNonzeroFloat64)
	p.Banker /= sum
	p.Player /= sum
	p.Tie /= sum

	return ProbabilityEstimate{Probabilities: p, ShoeProgress: progress, TotalHands: total}
}

// ExpectedValues returns the per-unit expected return of each bet.
// Banker pays 0.95 after commission, Player pays even money and Tie pays 8:1.
func ExpectedValues(p models.Probabilities) models.ExpectedValues {
	return models.ExpectedValues{
		Banker: p.Banker*bankerPayout - p.Player,
		Player: p.Player*playerPayout - p.Banker,
		Tie:    p.Tie*tiePayout - (1 - p.Tie),
	}
}

type accuracyBand struct {
	lo, hi   int
	from, to float64
}

var accuracyBands = []accuracyBand{
	{lo: 0, hi: 3, from: 0, to: 18},
	{lo: 3, hi: 6, from: 18, to: 30},
	{lo: 6, hi: 10, from: 30, to: 50},
	{lo: 10, hi: 30, from: 50, to: 95},
}

const maxAccuracy = 95.0

// Accuracy maps a hand count onto the cosmetic accuracy index.
// Within each band the value follows an exponential ease-out between the band's bounds
// and is rounded to one decimal.
func Accuracy(totalHands int) float64 {
	for _, b := range accuracyBands {
		if totalHands < b.lo || totalHands >= b.hi {
			continue
		}
		t := float64(totalHands-b.lo) / float64(b.hi-b.lo)
		eased := (1 - math.Exp(-2*t)) / (1 - math.Exp(-2))
		return roundTo(b.from+(b.to-b.from)*eased, 1)
	}
	if totalHands < 0 {
		return 0
	}
	return maxAccuracy
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}
