package models

// MaxHistoryLength is the default number of outcomes retained per room
const MaxHistoryLength = 90

// RoomTotals is a running tally of outcomes for a room that survives history trimming
type RoomTotals struct {
	Banker int `json:"banker"`
	Player int `json:"player"`
	Tie    int `json:"tie"`
}

// Add increments the counter for the given outcome
func (t *RoomTotals) Add(o Outcome) {
	switch o {
	case OutcomeBanker:
		t.Banker++
	case OutcomePlayer:
		t.Player++
	case OutcomeTie:
		t.Tie++
	}
}

// Total returns the number of hands counted
func (t RoomTotals) Total() int {
	return t.Banker + t.Player + t.Tie
}

// CountOutcomes tallies a history slice
func CountOutcomes(history []Outcome) RoomTotals {
	var totals RoomTotals
	for _, o := range history {
		totals.Add(o)
	}
	return totals
}

// RoomSnapshot is a copy of a room's state at a point in time
type RoomSnapshot struct {
	UserID  string
	Room    string
	History []Outcome
	Totals  RoomTotals
}

// RoomAnalysis bundles everything a renderer needs for one room
type RoomAnalysis struct {
	UserID     string
	Room       string
	History    []Outcome
	Totals     RoomTotals
	Roads      Roads
	Prediction PredictionResult
	Bankroll   *BankrollSnapshot
}
