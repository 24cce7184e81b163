package analysis

import (
	"math"

	"github.com/louisuxu-sys/BC-LINE/models"
)

const (
	evWeight          = 30
	probabilityWeight = 25
	patternWeight     = 25
	derivedWeight     = 20

	// without a pattern suggestion the pattern weight is split slightly in Banker's favour
	patternSplitBanker = 13
	patternSplitPlayer = 12

	derivedVoteThreshold = 2
	derivedVoteWindow    = 3

	baseConfidence      = 55
	tieScoreConfidence  = 58
	maxConfidence       = 92
	scoreDiffFactor     = 0.6
	accuracyBonusFactor = 0.15
)

// Scores is the weighted tally of the two sides
type Scores struct {
	Banker int
	Player int
}

func (s *Scores) add(o models.Outcome, points int) {
	if o == models.OutcomePlayer {
		s.Player += points
		return
	}
	s.Banker += points
}

// Decision is the aggregated call for the next hand
type Decision struct {
	Side        models.Outcome
	Confidence  int
	Scores      Scores
	DerivedVote int
}

// decisionInput carries every signal the aggregator consumes
type decisionInput struct {
	lastOutcome   models.Outcome
	probabilities models.Probabilities
	ev            models.ExpectedValues
	pattern       PatternResult
	derived       models.DerivedRoads
	accuracy      float64
}

// DerivedVote sums red minus blue over the newest few markers of each derived road
func DerivedVote(roads models.DerivedRoads) int {
	vote := 0
	for _, kind := range models.DerivedRoadKinds {
		recent := lastN(roads.Road(kind), derivedVoteWindow)
		red := countRed(recent)
		vote += red - (len(recent) - red)
	}
	return vote
}

func decide(in decisionInput) Decision {
	var scores Scores

	if in.ev.Banker >= in.ev.Player {
		scores.add(models.OutcomeBanker, evWeight)
	} else {
		scores.add(models.OutcomePlayer, evWeight)
	}

	if in.probabilities.Banker >= in.probabilities.Player {
		scores.add(models.OutcomeBanker, probabilityWeight)
	} else {
		scores.add(models.OutcomePlayer, probabilityWeight)
	}

	if in.pattern.HasSuggestion() {
		scores.add(in.pattern.Suggestion, patternWeight)
	} else {
		scores.add(models.OutcomeBanker, patternSplitBanker)
		scores.add(models.OutcomePlayer, patternSplitPlayer)
	}

	vote := DerivedVote(in.derived)
	switch {
	case vote >= derivedVoteThreshold:
		scores.add(in.lastOutcome, derivedWeight)
	case vote <= -derivedVoteThreshold:
		scores.add(in.lastOutcome.Opposite(), derivedWeight)
	default:
		scores.add(models.OutcomeBanker, derivedWeight/2)
		scores.add(models.OutcomePlayer, derivedWeight/2)
	}

	side := models.OutcomeBanker
	if scores.Player > scores.Banker {
		side = models.OutcomePlayer
	}

	var confidence int
	if scores.Banker == scores.Player {
		confidence = tieScoreConfidence
	} else {
		diff := float64(abs(scores.Banker - scores.Player))
		confidence = baseConfidence +
			int(math.RoundToEven(diff*scoreDiffFactor)) +
			int(math.RoundToEven(in.accuracy*accuracyBonusFactor))
		confidence = min(confidence, maxConfidence)
	}
	if in.pattern.HasSuggestion() && in.pattern.Confidence > confidence {
		confidence = in.pattern.Confidence
	}

	return Decision{Side: side, Confidence: confidence, Scores: scores, DerivedVote: vote}
}

// chooseMode walks the mode chain top to bottom; the first match wins
func chooseMode(streak int, ev models.ExpectedValues, hasSignals bool) models.Mode {
	best := ev.Best()
	switch {
	case streak >= 4 && best > 0:
		return models.ModeAggressiveLongStreak
	case streak >= 3:
		return models.ModeLongStreak
	case best > 0.01:
		return models.ModePositiveEV
	case hasSignals:
		return models.ModeFavorablePattern
	case best > -0.005:
		return models.ModeBalanced
	default:
		return models.ModeWaitAndSee
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
