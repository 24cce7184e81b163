package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulate(t *testing.T) {
	report := Simulate(500, 42)

	assert.Equal(t, 500, report.Hands)
	assert.Equal(t, 8, report.Shoes)
	assert.Equal(t, 500, report.Dealt.Total())

	snap := report.Bankroll
	assert.Equal(t, snap.Settled, snap.Wins+snap.Losses+snap.Pushes)
	assert.LessOrEqual(t, snap.Settled, 500)

	modes := 0
	for _, n := range report.Modes {
		modes += n
	}
	assert.Equal(t, 500, modes)
}

func TestSimulateIsDeterministic(t *testing.T) {
	a := Simulate(300, 7)
	b := Simulate(300, 7)
	assert.Equal(t, a.Dealt, b.Dealt)
	assert.True(t, a.Bankroll.Balance.Equal(b.Bankroll.Balance))
}

func TestSimulationReportPrint(t *testing.T) {
	var buf bytes.Buffer
	Simulate(100, 1).Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "Hands: 100 | Shoes: 2")
	assert.Contains(t, out, "Hit rate:")
	assert.Contains(t, out, "P&L:")
}

func TestSimulateZeroHands(t *testing.T) {
	report := Simulate(0, 1)
	assert.Zero(t, report.Shoes)
	assert.Zero(t, report.Bankroll.Settled)
}
