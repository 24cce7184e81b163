package models

import "github.com/shopspring/decimal"

// Suggestion is the engine's recommended side
type Suggestion string

const (
	SuggestBanker           Suggestion = "banker"
	SuggestPlayer           Suggestion = "player"
	SuggestInsufficientData Suggestion = "insufficient-data"
)

// SuggestionFor converts a binary outcome into a suggestion
func SuggestionFor(o Outcome) Suggestion {
	if o == OutcomePlayer {
		return SuggestPlayer
	}
	return SuggestBanker
}

// Outcome returns the side the suggestion bets on, false for the insufficient-data sentinel
func (s Suggestion) Outcome() (Outcome, bool) {
	switch s {
	case SuggestBanker:
		return OutcomeBanker, true
	case SuggestPlayer:
		return OutcomePlayer, true
	default:
		return "", false
	}
}

// Label returns the display text of the suggestion
func (s Suggestion) Label() string {
	if o, ok := s.Outcome(); ok {
		return o.Label()
	}
	return "Waiting for data"
}

// Mode is the betting mode chosen by the decision aggregator
type Mode string

const (
	ModeAggressiveLongStreak Mode = "aggressive-long-streak"
	ModeLongStreak           Mode = "long-streak"
	ModePositiveEV           Mode = "positive-ev"
	ModeFavorablePattern     Mode = "favorable-pattern"
	ModeBalanced             Mode = "balanced"
	ModeWaitAndSee           Mode = "wait-and-see"
	ModeInsufficientData     Mode = "insufficient-data"
)

// Units returns the stake attached to the mode
func (m Mode) Units() decimal.Decimal {
	switch m {
	case ModeAggressiveLongStreak:
		return decimal.NewFromInt(3)
	case ModeLongStreak, ModePositiveEV:
		return decimal.NewFromInt(2)
	case ModeFavorablePattern, ModeBalanced:
		return decimal.NewFromInt(1)
	case ModeWaitAndSee:
		return decimal.NewFromFloat(0.5)
	default:
		return decimal.Zero
	}
}

// BetSize returns the bet-size label shown to users
func (m Mode) BetSize() string {
	switch m {
	case ModeInsufficientData:
		return "observe"
	case ModeFavorablePattern, ModeBalanced:
		return "1 unit"
	default:
		return m.Units().String() + " units"
	}
}

// Label returns the display name of the mode
func (m Mode) Label() string {
	switch m {
	case ModeAggressiveLongStreak:
		return "Aggressive long streak"
	case ModeLongStreak:
		return "Long streak"
	case ModePositiveEV:
		return "Positive EV"
	case ModeFavorablePattern:
		return "Favorable pattern"
	case ModeBalanced:
		return "Balanced"
	case ModeWaitAndSee:
		return "Wait and see"
	default:
		return "Insufficient data"
	}
}

// Probabilities holds one probability per outcome
type Probabilities struct {
	Banker float64 `json:"banker"`
	Player float64 `json:"player"`
	Tie    float64 `json:"tie"`
}

// Sum returns the total probability mass
func (p Probabilities) Sum() float64 {
	return p.Banker + p.Player + p.Tie
}

// ExpectedValues holds the per-unit expected return of each bet
type ExpectedValues struct {
	Banker float64 `json:"banker"`
	Player float64 `json:"player"`
	Tie    float64 `json:"tie"`
}

// Best returns the higher of the Banker and Player expected values
func (e ExpectedValues) Best() float64 {
	return max(e.Banker, e.Player)
}

// PredictionResult is the engine's answer for one history
type PredictionResult struct {
	Suggestion    Suggestion     `json:"suggestion"`
	Confidence    int            `json:"confidence"`
	BetSize       string         `json:"bet_size"`
	Mode          Mode           `json:"mode"`
	Reasons       []string       `json:"reasons"`
	Accuracy      float64        `json:"accuracy"`
	Probabilities Probabilities  `json:"probabilities"`
	EV            ExpectedValues `json:"ev"`
	ShoeProgress  float64        `json:"shoe_progress"`
	Streak        int            `json:"streak"`
	Patterns      []string       `json:"patterns"`
}

// HasSuggestion reports whether the result carries a real side
func (r PredictionResult) HasSuggestion() bool {
	_, ok := r.Suggestion.Outcome()
	return ok
}
