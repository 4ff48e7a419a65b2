// file: services/scoring_test.go
package services

import (
	"testing"

	"github.com/Bellic12/RabbitCTF/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculateScoreStatic(t *testing.T) {
	// 静态题无视解题位次，永远给原始分
	for _, idx := range []int{0, 1, 5, 100} {
		assert.Equal(t, 500, CalculateScore(models.ScoringModeStatic, 500, idx, 0.9, 10))
	}
}

func TestCalculateScoreDynamic(t *testing.T) {
	cases := []struct {
		name       string
		baseScore  int
		solveIndex int
		decay      float64
		minScore   int
		want       int
	}{
		{"first blood keeps base", 500, 0, 0.9, 100, 500},
		{"second solver decays once", 500, 1, 0.9, 100, 450},
		{"third solver decays twice", 500, 2, 0.9, 100, 405},
		{"fractional result floored", 500, 3, 0.9, 100, 364}, // 500 * 0.729 = 364.5
		{"decay floors at min score", 500, 50, 0.9, 100, 100},
		{"min score default applies", 100, 100, 0.5, 0, DefaultMinScore},
		{"invalid decay falls back to default", 500, 1, 1.5, 100, 450},
		{"zero decay falls back to default", 500, 1, 0, 100, 450},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateScore(models.ScoringModeDynamic, tc.baseScore, tc.solveIndex, tc.decay, tc.minScore)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateScoreDynamicMonotonic(t *testing.T) {
	// 分数随位次单调不增，且永不低于保底
	previous := 1000
	for idx := 0; idx < 200; idx++ {
		score := CalculateScore(models.ScoringModeDynamic, 1000, idx, 0.9, 50)
		assert.LessOrEqual(t, score, previous)
		assert.GreaterOrEqual(t, score, 50)
		previous = score
	}
}

func TestEffectiveDecayAndMinScore(t *testing.T) {
	assert.Equal(t, 0.75, EffectiveDecay(models.ScoreConfig{DecayFactor: 0.75}))
	assert.Equal(t, DefaultDecayFactor, EffectiveDecay(models.ScoreConfig{}))
	assert.Equal(t, DefaultDecayFactor, EffectiveDecay(models.ScoreConfig{DecayFactor: 2}))

	assert.Equal(t, 50, EffectiveMinScore(models.ScoreConfig{MinScore: 50}))
	assert.Equal(t, DefaultMinScore, EffectiveMinScore(models.ScoreConfig{}))
}
