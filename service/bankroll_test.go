package service

import (
	"testing"

	"github.com/louisuxu-sys/BC-LINE/events"
	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPayout(t *testing.T) {
	two := decimal.NewFromInt(2)
	tests := []struct {
		name    string
		side    models.Outcome
		outcome models.Outcome
		want    string
		result  SettleResult
	}{
		{"banker win pays commission", models.OutcomeBanker, models.OutcomeBanker, "1.9", SettleWin},
		{"player win pays even", models.OutcomePlayer, models.OutcomePlayer, "2", SettleWin},
		{"banker loses", models.OutcomeBanker, models.OutcomePlayer, "-2", SettleLoss},
		{"player loses", models.OutcomePlayer, models.OutcomeBanker, "-2", SettleLoss},
		{"tie pushes banker", models.OutcomeBanker, models.OutcomeTie, "0", SettlePush},
		{"tie pushes player", models.OutcomePlayer, models.OutcomeTie, "0", SettlePush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, result := Payout(tt.side, tt.outcome, two)
			assert.Equal(t, tt.want, change.String())
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestLedger(t *testing.T) {
	var l Ledger

	_, _, ok := l.Settle(models.OutcomeBanker)
	assert.False(t, ok, "nothing staked yet")

	l.PlacePrediction(models.PredictionResult{Suggestion: models.SuggestInsufficientData, Mode: models.ModeInsufficientData})
	assert.Nil(t, l.Snapshot().Pending)

	l.PlacePrediction(models.PredictionResult{Suggestion: models.SuggestPlayer, Mode: models.ModeWaitAndSee})
	require.NotNil(t, l.Snapshot().Pending)
	assert.Equal(t, "0.5", l.Snapshot().Pending.Units.String())

	_, result, ok := l.Settle(models.OutcomeTie)
	require.True(t, ok)
	assert.Equal(t, SettlePush, result)

	l.Place(models.OutcomeBanker, decimal.NewFromInt(2))
	l.Settle(models.OutcomePlayer)
	l.Place(models.OutcomeBanker, decimal.NewFromInt(1))
	l.Settle(models.OutcomeBanker)

	snap := l.Snapshot()
	assert.Equal(t, "-1.05", snap.Balance.String())
	assert.Equal(t, 3, snap.Settled)
	assert.Equal(t, 1, snap.Wins)
	assert.Equal(t, 1, snap.Losses)
	assert.Equal(t, 1, snap.Pushes)
	assert.InDelta(t, 50.0, snap.HitRate(), 1e-9)
	assert.Nil(t, snap.Pending)
}

func TestLedgerSnapshotIsACopy(t *testing.T) {
	var l Ledger
	l.Place(models.OutcomeBanker, decimal.NewFromInt(1))

	snap := l.Snapshot()
	snap.Pending.Side = models.OutcomePlayer
	assert.Equal(t, models.OutcomeBanker, l.Snapshot().Pending.Side)
}

func TestLedgerCancel(t *testing.T) {
	var l Ledger
	l.Place(models.OutcomePlayer, decimal.NewFromInt(1))
	l.Cancel()

	_, _, ok := l.Settle(models.OutcomePlayer)
	assert.False(t, ok)
	assert.Zero(t, l.Snapshot().Settled)
}

func TestLedgerProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var l Ledger
		hands := rapid.SliceOf(rapid.SampledFrom([]models.Outcome{
			models.OutcomeBanker, models.OutcomePlayer, models.OutcomeTie,
		})).Draw(t, "hands")

		for i, outcome := range hands {
			side := rapid.SampledFrom([]models.Outcome{models.OutcomeBanker, models.OutcomePlayer}).Draw(t, "side")
			l.Place(side, decimal.NewFromInt(int64(1+i%3)))
			l.Settle(outcome)
		}

		snap := l.Snapshot()
		if snap.Settled != len(hands) || snap.Wins+snap.Losses+snap.Pushes != snap.Settled {
			t.Fatalf("counters out of sync: %+v after %d hands", snap, len(hands))
		}
	})
}

func TestBankrollService(t *testing.T) {
	publisher := &MockEventPublisher{}
	svc := NewBankrollService(publisher)

	banker := models.PredictionResult{Suggestion: models.SuggestBanker, Mode: models.ModeLongStreak}
	svc.Place("U1", "A01", banker)
	svc.Place("U1", "A02", banker)
	svc.Place("U2", "A01", banker)

	snap := svc.Settle("U1", "A01", models.OutcomeBanker)
	assert.Equal(t, "1.9", snap.Balance.String())

	settled := publisher.OfType(events.EventTypeBetSettled)
	require.Len(t, settled, 1)
	assert.Equal(t, events.BetSettledEvent{
		UserID:  "U1",
		Room:    "A01",
		Side:    models.OutcomeBanker,
		Outcome: models.OutcomeBanker,
		Units:   "2",
		Balance: "1.9",
	}, settled[0])

	svc.ResetUser("U1")
	assert.Nil(t, svc.Snapshot("U1", "A02").Pending)
	assert.NotNil(t, svc.Snapshot("U2", "A01").Pending)

	svc.Reset("U2", "A01")
	assert.Nil(t, svc.Snapshot("U2", "A01").Pending)
}
