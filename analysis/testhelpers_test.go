package analysis

import (
	"github.com/louisuxu-sys/BC-LINE/models"
	"pgregory.net/rapid"
)

// seq parses a compact history string: B = Banker, P = Player, T = Tie
func seq(s string) []models.Outcome {
	out := make([]models.Outcome, 0, len(s))
	for _, r := range s {
		switch r {
		case 'B':
			out = append(out, models.OutcomeBanker)
		case 'P':
			out = append(out, models.OutcomePlayer)
		case 'T':
			out = append(out, models.OutcomeTie)
		}
	}
	return out
}

// keypad parses the 1/2/3 codes users type into the chat
func keypad(s string) []models.Outcome {
	return models.ParseOutcomes(s)
}

func markers(s string) []models.Marker {
	out := make([]models.Marker, 0, len(s))
	for _, r := range s {
		out = append(out, models.Marker(string(r)))
	}
	return out
}

func runsOf(pairs ...any) []models.Run {
	runs := make([]models.Run, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		runs = append(runs, models.Run{Value: pairs[i].(models.Outcome), Length: pairs[i+1].(int)})
	}
	return runs
}

func historyGen() *rapid.Generator[[]models.Outcome] {
	return rapid.SliceOfN(rapid.SampledFrom([]models.Outcome{
		models.OutcomeBanker,
		models.OutcomePlayer,
		models.OutcomeTie,
	}), 0, models.MaxHistoryLength)
}

func pureGen() *rapid.Generator[[]models.Outcome] {
	return rapid.SliceOfN(rapid.SampledFrom([]models.Outcome{
		models.OutcomeBanker,
		models.OutcomePlayer,
	}), 0, models.MaxHistoryLength)
}
