package service

import (
	"sync"

	"github.com/louisuxu-sys/BC-LINE/events"
	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// BankerCommission is the share of a Banker win the house keeps
var BankerCommission = decimal.RequireFromString("0.05")

// SettleResult describes how one pending bet resolved
type SettleResult string

const (
	SettleWin  SettleResult = "win"
	SettleLoss SettleResult = "loss"
	SettlePush SettleResult = "push"
)

// Payout returns the net change of a bet of units on side when outcome is dealt.
// Banker wins pay 0.95 to 1, Player wins pay even money and ties return the stake.
func Payout(side, outcome models.Outcome, units decimal.Decimal) (decimal.Decimal, SettleResult) {
	switch {
	case outcome == models.OutcomeTie:
		return decimal.Zero, SettlePush
	case outcome != side:
		return units.Neg(), SettleLoss
	case side == models.OutcomeBanker:
		return units.Mul(decimal.NewFromInt(1).Sub(BankerCommission)), SettleWin
	default:
		return units, SettleWin
	}
}

// Ledger tracks one simulated bankroll. It is not safe for concurrent use.
type Ledger struct {
	state models.BankrollSnapshot
}

// Place replaces any pending bet. Zero or negative stakes clear it.
func (l *Ledger) Place(side models.Outcome, units decimal.Decimal) {
	if !side.IsBinary() || !units.IsPositive() {
		l.state.Pending = nil
		return
	}
	l.state.Pending = &models.PendingBet{Side: side, Units: units}
}

// PlacePrediction stakes the suggestion of a prediction at its mode's unit size
func (l *Ledger) PlacePrediction(p models.PredictionResult) {
	side, ok := p.Suggestion.Outcome()
	if !ok {
		l.state.Pending = nil
		return
	}
	l.Place(side, p.Mode.Units())
}

// Settle resolves the pending bet against outcome; false when nothing was staked
func (l *Ledger) Settle(outcome models.Outcome) (decimal.Decimal, SettleResult, bool) {
	bet := l.state.Pending
	if bet == nil {
		return decimal.Zero, "", false
	}
	l.state.Pending = nil

	change, result := Payout(bet.Side, outcome, bet.Units)
	l.state.Balance = l.state.Balance.Add(change)
	l.state.Settled++
	switch result {
	case SettleWin:
		l.state.Wins++
	case SettleLoss:
		l.state.Losses++
	case SettlePush:
		l.state.Pushes++
	}
	return change, result, true
}

// Cancel drops the pending bet without settling it
func (l *Ledger) Cancel() {
	l.state.Pending = nil
}

// Snapshot returns a copy of the ledger state
func (l *Ledger) Snapshot() models.BankrollSnapshot {
	snap := l.state
	if snap.Pending != nil {
		pending := *snap.Pending
		snap.Pending = &pending
	}
	return snap
}

type roomKey struct {
	userID string
	room   string
}

// bankrollService keeps one ledger per user and room in memory
type bankrollService struct {
	mu             sync.Mutex
	ledgers        map[roomKey]*Ledger
	eventPublisher EventPublisher
}

// NewBankrollService creates a new bankroll service
func NewBankrollService(eventPublisher EventPublisher) BankrollService {
	return &bankrollService{
		ledgers:        make(map[roomKey]*Ledger),
		eventPublisher: eventPublisher,
	}
}

func (s *bankrollService) ledger(userID, room string) *Ledger {
	key := roomKey{userID: userID, room: room}
	l, ok := s.ledgers[key]
	if !ok {
		l = &Ledger{}
		s.ledgers[key] = l
	}
	return l
}

func (s *bankrollService) Settle(userID, room string, outcome models.Outcome) models.BankrollSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.ledger(userID, room)
	var side models.Outcome
	var units decimal.Decimal
	if l.state.Pending != nil {
		side, units = l.state.Pending.Side, l.state.Pending.Units
	}

	change, result, ok := l.Settle(outcome)
	snap := l.Snapshot()
	if !ok {
		return snap
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"room":    room,
		"side":    side,
		"outcome": outcome,
		"result":  result,
		"change":  change.String(),
		"balance": snap.Balance.String(),
	}).Debug("Settled simulated bet")

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(events.BetSettledEvent{
			UserID:  userID,
			Room:    room,
			Side:    side,
			Outcome: outcome,
			Units:   units.String(),
			Balance: snap.Balance.String(),
		})
	}
	return snap
}

func (s *bankrollService) Place(userID, room string, prediction models.PredictionResult) models.BankrollSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.ledger(userID, room)
	l.PlacePrediction(prediction)
	return l.Snapshot()
}

func (s *bankrollService) Snapshot(userID, room string) models.BankrollSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.ledgers[roomKey{userID: userID, room: room}]; ok {
		return l.Snapshot()
	}
	return models.BankrollSnapshot{}
}

func (s *bankrollService) Reset(userID, room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, roomKey{userID: userID, room: room})
}

func (s *bankrollService) ResetUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.ledgers {
		if key.userID == userID {
			delete(s.ledgers, key)
		}
	}
}
