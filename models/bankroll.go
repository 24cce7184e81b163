package models

import "github.com/shopspring/decimal"

// PendingBet is the stake placed on the next hand after a prediction
type PendingBet struct {
	Side  Outcome
	Units decimal.Decimal
}

// BankrollSnapshot is the simulated profit and loss of following the engine in one room
type BankrollSnapshot struct {
	Balance decimal.Decimal
	Settled int
	Wins    int
	Losses  int
	Pushes  int
	Pending *PendingBet
}

// HitRate returns the share of decided bets that won, as a percentage
func (s BankrollSnapshot) HitRate() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided) * 100
}
