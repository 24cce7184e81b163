package analysis

import (
	"strings"
	"testing"

	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func hasLabel(labels []string, prefix string) bool {
	for _, l := range labels {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func TestDetectPatterns(t *testing.T) {
	t.Run("too short to judge", func(t *testing.T) {
		res := DetectPatterns(seq("B"))
		assert.Empty(t, res.Labels)
		assert.False(t, res.HasSuggestion())
		assert.Equal(t, 60, res.Confidence)
	})

	t.Run("four banker streak", func(t *testing.T) {
		res := DetectPatterns(Pure(seq("PBBBB")))
		assert.True(t, hasLabel(res.Labels, "long-streak"))
		assert.Equal(t, models.OutcomeBanker, res.Suggestion)
		assert.Equal(t, 78, res.Confidence)
	})

	t.Run("three streak", func(t *testing.T) {
		res := DetectPatterns(seq("BPPP"))
		assert.True(t, hasLabel(res.Labels, "long-streak"))
		assert.Equal(t, models.OutcomePlayer, res.Suggestion)
		assert.Equal(t, 72, res.Confidence)
	})

	t.Run("super long streak", func(t *testing.T) {
		res := DetectPatterns(seq("PBBBBBB"))
		assert.True(t, hasLabel(res.Labels, "super-long-streak"))
		assert.Equal(t, models.OutcomeBanker, res.Suggestion)
		assert.Equal(t, 82, res.Confidence)
	})

	t.Run("six single jumps", func(t *testing.T) {
		res := DetectPatterns(seq("BPBPBP"))
		assert.True(t, hasLabel(res.Labels, "single-jump"))
		assert.True(t, hasLabel(res.Labels, "skip-on-player"))
		assert.True(t, hasLabel(res.Labels, "mirror"))
		assert.Equal(t, models.OutcomeBanker, res.Suggestion)
		assert.Equal(t, 74, res.Confidence)
	})

	t.Run("four single jumps", func(t *testing.T) {
		res := DetectPatterns(seq("PBPB"))
		assert.True(t, hasLabel(res.Labels, "single-jump"))
		assert.Equal(t, models.OutcomePlayer, res.Suggestion)
		assert.Equal(t, 70, res.Confidence)
	})

	t.Run("short alternation only counts with four or five runs", func(t *testing.T) {
		res := DetectPatterns(seq("BBBPBPBP"))
		assert.False(t, hasLabel(res.Labels, "single-jump"))
		assert.True(t, hasLabel(res.Labels, "skip-on-player"))
		assert.Equal(t, models.OutcomeBanker, res.Suggestion)
		assert.Equal(t, 72, res.Confidence)
	})

	t.Run("double jump completed pair", func(t *testing.T) {
		res := DetectPatterns(seq("BBPPBBPP"))
		assert.True(t, hasLabel(res.Labels, "double-jump"))
		assert.True(t, hasLabel(res.Labels, "lockstep"))
		// lockstep raises but does not lower the double-jump confidence
		assert.Equal(t, models.OutcomePlayer, res.Suggestion)
		assert.Equal(t, 72, res.Confidence)
	})

	t.Run("double jump pair in progress", func(t *testing.T) {
		res := DetectPatterns(seq("BBPPBBPPB"))
		assert.True(t, hasLabel(res.Labels, "double-jump"))
		assert.Equal(t, models.OutcomeBanker, res.Suggestion)
		assert.Equal(t, 68, res.Confidence)
	})

	t.Run("one-two cycle completing", func(t *testing.T) {
		res := DetectPatterns(seq("BPPBPP"))
		assert.True(t, hasLabel(res.Labels, "one-two"))
		assert.Equal(t, models.OutcomeBanker, res.Suggestion)
		assert.Equal(t, 70, res.Confidence)
	})

	t.Run("one-two cycle needs all four runs", func(t *testing.T) {
		res := DetectPatterns(seq("PBBPB"))
		assert.Empty(t, res.Labels)
		assert.False(t, res.HasSuggestion())
		assert.Equal(t, 60, res.Confidence)
	})

	t.Run("two-one cycle completing", func(t *testing.T) {
		res := DetectPatterns(seq("PPBPPB"))
		assert.True(t, hasLabel(res.Labels, "two-one"))
		assert.Equal(t, models.OutcomePlayer, res.Suggestion)
		assert.Equal(t, 70, res.Confidence)
	})

	t.Run("banker always doubles", func(t *testing.T) {
		res := DetectPatterns(seq("BBPBBBPBB"))
		assert.True(t, hasLabel(res.Labels, "banker-always-doubles"))
		assert.Equal(t, models.OutcomeBanker, res.Suggestion)
		assert.Equal(t, 73, res.Confidence)
	})

	t.Run("ramp down suggests a switch", func(t *testing.T) {
		res := DetectPatterns(seq("BBBPPB"))
		assert.True(t, hasLabel(res.Labels, "ramp-down"))
		assert.Equal(t, models.OutcomePlayer, res.Suggestion)
		assert.Equal(t, 68, res.Confidence)
	})

	t.Run("ramp up follows the growing side", func(t *testing.T) {
		res := DetectPatterns(seq("BPPBBB"))
		assert.True(t, hasLabel(res.Labels, "ramp-up"))
		assert.Equal(t, models.OutcomeBanker, res.Suggestion)
		// long streak set 72, ramp-up raises to 71 at most
		assert.Equal(t, 72, res.Confidence)
	})
}

func TestPatternConfidenceRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		res := DetectPatterns(pureGen().Draw(t, "pure"))
		if res.Confidence < 60 || res.Confidence > 85 {
			t.Fatalf("confidence %d outside nominal range", res.Confidence)
		}
		if res.HasSuggestion() && len(res.Labels) == 0 {
			t.Fatalf("suggestion without any label")
		}
	})
}
