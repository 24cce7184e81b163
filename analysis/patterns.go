package analysis

import (
	"fmt"

	"github.com/louisuxu-sys/BC-LINE/models"
)

const basePatternConfidence = 60

// PatternResult is the output of the pattern detector
type PatternResult struct {
	Labels     []string
	Suggestion models.Outcome
	Confidence int
}

// HasSuggestion reports whether any rule proposed a side
func (p PatternResult) HasSuggestion() bool {
	return p.Suggestion.IsBinary()
}

type patternState struct {
	runs []models.Run
	last models.Run
	res  PatternResult
}

func (s *patternState) label(format string, args ...any) {
	s.res.Labels = append(s.res.Labels, fmt.Sprintf(format, args...))
}

// set overwrites the suggestion and confidence
func (s *patternState) set(o models.Outcome, confidence int) {
	s.res.Suggestion = o
	s.res.Confidence = confidence
}

// raise sets the suggestion but never lowers the confidence
func (s *patternState) raise(o models.Outcome, confidence int) {
	s.res.Suggestion = o
	s.res.Confidence = max(s.res.Confidence, confidence)
}

func (s *patternState) tail(n int) []models.Run {
	return s.runs[len(s.runs)-n:]
}

type patternRule struct {
	name    string
	minRuns int
	apply   func(s *patternState)
}

// patternRules run in order. A later match may overwrite an earlier suggestion;
// whether it also overwrites confidence or only raises it is decided per rule.
var patternRules = []patternRule{
	{name: "long-streak", minRuns: 1, apply: applyLongStreak},
	{name: "single-jump", minRuns: 4, apply: applySingleJump},
	{name: "double-jump", minRuns: 4, apply: applyDoubleJump},
	{name: "one-two-cycle", minRuns: 4, apply: applyOneTwoCycle},
	{name: "skip-on-side", minRuns: 6, apply: applySkipOnSide},
	{name: "always-doubles", minRuns: 5, apply: applyAlwaysDoubles},
	{name: "lockstep", minRuns: 4, apply: applyLockstep},
	{name: "ramp", minRuns: 3, apply: applyRamp},
	{name: "mirror", minRuns: 4, apply: applyMirror},
}

// DetectPatterns inspects the run structure of a pure sequence for known motifs
func DetectPatterns(pure []models.Outcome) PatternResult {
	res := PatternResult{Confidence: basePatternConfidence}
	if len(pure) < 2 {
		return res
	}

	runs := Runs(pure)
	s := &patternState{runs: runs, last: runs[len(runs)-1], res: res}
	for _, rule := range patternRules {
		if len(runs) < rule.minRuns {
			continue
		}
		rule.apply(s)
	}
	return s.res
}

func applyLongStreak(s *patternState) {
	v, n := s.last.Value.Label(), s.last.Length
	switch {
	case n >= 6:
		s.label("super-long-streak: %d %s in a row, the dragon keeps going", n, v)
		s.set(s.last.Value, 82)
	case n >= 4:
		s.label("long-streak: %d %s in a row, the dragon keeps going", n, v)
		s.set(s.last.Value, 78)
	case n >= 3:
		s.label("long-streak: %d %s in a row", n, v)
		s.set(s.last.Value, 72)
	}
}

func applySingleJump(s *patternState) {
	next := s.last.Value.Opposite()
	switch {
	case len(s.runs) >= 6 && allLengths(s.tail(6), func(n int) bool { return n == 1 }):
		s.label("single-jump: Banker and Player alternating, next jumps to %s", next.Label())
		s.set(next, 74)
	case len(s.runs) < 6 && allLengths(s.tail(4), func(n int) bool { return n == 1 }):
		s.label("single-jump: short alternation, next jumps to %s", next.Label())
		s.set(next, 70)
	}
}

func applyDoubleJump(s *patternState) {
	isTwo := func(n int) bool { return n == 2 }
	switch {
	case allLengths(s.tail(4), isTwo):
		s.label("double-jump: pairs alternating, next switches to %s", s.last.Value.Opposite().Label())
		s.set(s.last.Value.Opposite(), 72)
	case len(s.runs) >= 5 && allLengths(s.runs[len(s.runs)-5:len(s.runs)-1], isTwo) && s.last.Length == 1:
		s.label("double-jump: pairs alternating, %s should repeat", s.last.Value.Label())
		s.set(s.last.Value, 68)
	}
}

// applyOneTwoCycle looks for the [1,2,1,2] and [2,1,2,1] length cycles on two alternating sides.
// A full match means the trailing run has filled its slot, so the first side comes back.
func applyOneTwoCycle(s *patternState) {
	window := s.tail(4)
	lengths := [4]int{window[0].Length, window[1].Length, window[2].Length, window[3].Length}
	for _, cycle := range [][4]int{{1, 2, 1, 2}, {2, 1, 2, 1}} {
		if lengths != cycle {
			continue
		}
		a, b := window[0].Value, window[1].Value
		s.label("%s: %s then %s repeating", cycleName(cycle), a.Label(), b.Label())
		s.set(a, 70)
		return
	}
}

func cycleName(cycle [4]int) string {
	if cycle[0] == 1 {
		return "one-two"
	}
	return "two-one"
}

func applySkipOnSide(s *patternState) {
	window := s.tail(6)
	for _, side := range []models.Outcome{models.OutcomeBanker, models.OutcomePlayer} {
		count, allSingles := 0, true
		for _, r := range window {
			if r.Value != side {
				continue
			}
			count++
			if r.Length != 1 {
				allSingles = false
			}
		}
		if count < 2 || !allSingles {
			continue
		}
		s.label("skip-on-%s: %s never repeats before switching", sideSlug(side), side.Label())
		if s.last.Value == side && s.last.Length == 1 {
			s.raise(side.Opposite(), 72)
		}
	}
}

func applyAlwaysDoubles(s *patternState) {
	w := s.tail(5)
	for _, side := range []models.Outcome{models.OutcomeBanker, models.OutcomePlayer} {
		if w[0].Value != side || w[2].Value != side || w[4].Value != side {
			continue
		}
		if w[0].Length < 2 || w[2].Length < 2 || w[4].Length < 2 {
			continue
		}
		s.label("%s-always-doubles: every %s run lasts two or more", sideSlug(side), side.Label())
		if s.last.Value == side {
			s.set(side, 73)
		}
	}
}

func applyLockstep(s *patternState) {
	if !allLengths(s.tail(4), func(n int) bool { return n >= 2 }) {
		return
	}
	s.label("lockstep: the last four columns all run two or more")
	s.raise(s.last.Value, 70)
}

func applyRamp(s *patternState) {
	w := s.tail(3)
	switch {
	case w[0].Length < w[1].Length && w[1].Length < w[2].Length:
		s.label("ramp-up: columns growing %d-%d-%d", w[0].Length, w[1].Length, w[2].Length)
		s.raise(s.last.Value, 71)
	case w[0].Length > w[1].Length && w[1].Length > w[2].Length && w[2].Length == 1:
		s.label("ramp-down: columns shrinking %d-%d-%d", w[0].Length, w[1].Length, w[2].Length)
		s.raise(s.last.Value.Opposite(), 68)
	}
}

func applyMirror(s *patternState) {
	w := s.tail(4)
	if w[0].Length != w[3].Length || w[1].Length != w[2].Length {
		return
	}
	s.label("mirror: column lengths %d-%d-%d-%d", w[0].Length, w[1].Length, w[2].Length, w[3].Length)
	s.res.Confidence = max(s.res.Confidence, 69)
}

func allLengths(runs []models.Run, pred func(int) bool) bool {
	for _, r := range runs {
		if !pred(r.Length) {
			return false
		}
	}
	return true
}

func sideSlug(o models.Outcome) string {
	return string(o)
}
