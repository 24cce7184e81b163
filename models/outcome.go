package models

// Outcome is the result of a single baccarat round
type Outcome string

const (
	OutcomeBanker Outcome = "banker"
	OutcomePlayer Outcome = "player"
	OutcomeTie    Outcome = "tie"
)

// IsBinary reports whether the outcome takes part in road and pattern logic
func (o Outcome) IsBinary() bool {
	return o == OutcomeBanker || o == OutcomePlayer
}

// Opposite returns the other binary side. Ties have no opposite and are returned unchanged.
func (o Outcome) Opposite() Outcome {
	switch o {
	case OutcomeBanker:
		return OutcomePlayer
	case OutcomePlayer:
		return OutcomeBanker
	default:
		return o
	}
}

// Label returns the display name of the outcome
func (o Outcome) Label() string {
	switch o {
	case OutcomeBanker:
		return "Banker"
	case OutcomePlayer:
		return "Player"
	case OutcomeTie:
		return "Tie"
	default:
		return string(o)
	}
}

// Short returns the single letter used on the bead road
func (o Outcome) Short() string {
	switch o {
	case OutcomeBanker:
		return "B"
	case OutcomePlayer:
		return "P"
	case OutcomeTie:
		return "T"
	default:
		return "?"
	}
}

// ParseOutcomeCode maps a keypad digit to an outcome: 1 = Player, 2 = Banker, 3 = Tie
func ParseOutcomeCode(r rune) (Outcome, bool) {
	switch r {
	case '1':
		return OutcomePlayer, true
	case '2':
		return OutcomeBanker, true
	case '3':
		return OutcomeTie, true
	}
	return "", false
}

// ParseOutcomes extracts every outcome code from free text, ignoring anything else
func ParseOutcomes(text string) []Outcome {
	var outcomes []Outcome
	for _, r := range text {
		if o, ok := ParseOutcomeCode(r); ok {
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}
