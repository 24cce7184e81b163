package analysis

import (
	"slices"
	"testing"

	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPure(t *testing.T) {
	t.Run("removes ties and keeps order", func(t *testing.T) {
		assert.Equal(t, seq("BPPB"), Pure(seq("TBPTPBT")))
	})

	t.Run("empty and tie-only histories", func(t *testing.T) {
		assert.Empty(t, Pure(nil))
		assert.Empty(t, Pure(seq("TTT")))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		history := seq("BTP")
		Pure(history)
		assert.Equal(t, seq("BTP"), history)
	})
}

func TestRuns(t *testing.T) {
	t.Run("empty sequence", func(t *testing.T) {
		assert.Empty(t, Runs(nil))
	})

	t.Run("single entry", func(t *testing.T) {
		assert.Equal(t, runsOf(models.OutcomeBanker, 1), Runs(seq("B")))
	})

	t.Run("splits on every change", func(t *testing.T) {
		assert.Equal(t,
			runsOf(models.OutcomePlayer, 1, models.OutcomeBanker, 2, models.OutcomePlayer, 1, models.OutcomeBanker, 2),
			Runs(seq("PBBPBB")))
	})

	t.Run("panics on ties", func(t *testing.T) {
		assert.Panics(t, func() { Runs(seq("BTB")) })
	})
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"single", "B", 1},
		{"last two differ", "BBP", 1},
		{"trailing four", "PBBBB", 4},
		{"whole sequence", "PPP", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(seq(tt.in)))
		})
	}
}

func TestGroupRuns(t *testing.T) {
	t.Run("groups markers", func(t *testing.T) {
		got := GroupRuns(markers("RRBRBB"))
		assert.Equal(t, [][]models.Marker{markers("RR"), markers("B"), markers("R"), markers("BB")}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, GroupRuns([]int{}))
	})
}

func TestClassifierProperties(t *testing.T) {
	t.Run("pure is idempotent", rapid.MakeCheck(func(t *rapid.T) {
		history := historyGen().Draw(t, "history")
		once := Pure(history)
		if !slices.Equal(once, Pure(once)) {
			t.Fatalf("pure not idempotent for %v", history)
		}
	}))

	t.Run("runs partition the pure sequence", rapid.MakeCheck(func(t *rapid.T) {
		pure := Pure(historyGen().Draw(t, "history"))
		runs := Runs(pure)

		var rebuilt []models.Outcome
		for i, r := range runs {
			if r.Length < 1 {
				t.Fatalf("run %d has length %d", i, r.Length)
			}
			if i > 0 && runs[i-1].Value == r.Value {
				t.Fatalf("adjacent runs %d and %d share value %s", i-1, i, r.Value)
			}
			for range r.Length {
				rebuilt = append(rebuilt, r.Value)
			}
		}
		if !slices.Equal(pure, rebuilt) {
			t.Fatalf("runs %v do not rebuild %v", runs, pure)
		}
	}))

	t.Run("streak matches trailing run", rapid.MakeCheck(func(t *rapid.T) {
		pure := pureGen().Draw(t, "pure")
		runs := Runs(pure)
		want := 0
		if len(runs) > 0 {
			want = runs[len(runs)-1].Length
		}
		if got := CurrentStreak(pure); got != want {
			t.Fatalf("streak %d, want %d", got, want)
		}
	}))
}
