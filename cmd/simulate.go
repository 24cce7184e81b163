package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/louisuxu-sys/BC-LINE/analysis"
	"github.com/louisuxu-sys/BC-LINE/bot/common"
	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/louisuxu-sys/BC-LINE/service"
)

// Base rates of an eight-deck shoe
const (
	BankerRate = 0.4586
	PlayerRate = 0.4462
)

// ShoeLength is the number of hands dealt before the simulated room is reset
const ShoeLength = 70

// SimulationReport summarises one simulation run
type SimulationReport struct {
	Hands    int
	Shoes    int
	Dealt    models.RoomTotals
	Bankroll models.BankrollSnapshot
	Modes    map[models.Mode]int
}

// Simulate deals hands at the base rates, feeds each shoe through the engine and follows every
// suggestion with a simulated bankroll
func Simulate(hands int, seed int64) SimulationReport {
	rng := rand.New(rand.NewSource(seed))
	report := SimulationReport{Hands: hands, Modes: make(map[models.Mode]int)}
	ledger := &service.Ledger{}

	var history []models.Outcome
	var totals models.RoomTotals

	for i := 0; i < hands; i++ {
		if i%ShoeLength == 0 {
			history = history[:0]
			totals = models.RoomTotals{}
			ledger.Cancel()
			report.Shoes++
		}

		outcome := deal(rng)
		ledger.Settle(outcome)
		report.Dealt.Add(outcome)

		history = append(history, outcome)
		totals.Add(outcome)

		prediction := analysis.Predict(history, &totals)
		report.Modes[prediction.Mode]++
		ledger.PlacePrediction(prediction)
	}

	report.Bankroll = ledger.Snapshot()
	return report
}

func deal(rng *rand.Rand) models.Outcome {
	switch r := rng.Float64(); {
	case r < BankerRate:
		return models.OutcomeBanker
	case r < BankerRate+PlayerRate:
		return models.OutcomePlayer
	default:
		return models.OutcomeTie
	}
}

// Print writes the report in a human readable form
func (r SimulationReport) Print(w io.Writer) {
	fmt.Fprintf(w, "=== BC-LINE Bankroll Simulation ===\n\n")
	fmt.Fprintf(w, "Hands: %d | Shoes: %d\n", r.Hands, r.Shoes)
	fmt.Fprintf(w, "Dealt: %s\n", common.FormatTotals(r.Dealt))
	if total := r.Dealt.Total(); total > 0 {
		fmt.Fprintf(w, "  Banker %.2f%% (expected %.2f%%) | Player %.2f%% (expected %.2f%%)\n",
			100*float64(r.Dealt.Banker)/float64(total), BankerRate*100,
			100*float64(r.Dealt.Player)/float64(total), PlayerRate*100)
	}

	fmt.Fprintf(w, "\nModes:\n")
	modes := make([]models.Mode, 0, len(r.Modes))
	for m := range r.Modes {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return r.Modes[modes[i]] > r.Modes[modes[j]] })
	for _, m := range modes {
		fmt.Fprintf(w, "  %-20s %6d\n", m.Label(), r.Modes[m])
	}

	snap := r.Bankroll
	fmt.Fprintf(w, "\nBets settled: %d (%dW %dL %dT)\n", snap.Settled, snap.Wins, snap.Losses, snap.Pushes)
	fmt.Fprintf(w, "Hit rate:     %.2f%%\n", snap.HitRate())
	fmt.Fprintf(w, "P&L:          %s\n", common.FormatUnits(snap.Balance))
}
