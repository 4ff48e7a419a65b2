// file: services/scoring.go
package services

import (
	"math"

	"github.com/Bellic12/RabbitCTF/models"
)

// 配置缺省时的衰减参数
const (
	DefaultDecayFactor = 0.9
	DefaultMinScore    = 10
)

// CalculateScore 按计分模式计算某次解题应得的分数，是一个无状态的纯函数
// solveIndex 是该次解题在该题全部正确提交中的位置（0 = 一血）
//   - static:  永远返回 baseScore
//   - dynamic: max(floor(baseScore * decay^solveIndex), minScore)
//
// decay/minScore 非法或未配置时回落到默认值，函数本身不产生错误
func CalculateScore(mode models.ScoringMode, baseScore, solveIndex int, decay float64, minScore int) int {
	if mode != models.ScoringModeDynamic {
		return baseScore
	}
	if solveIndex <= 0 {
		return baseScore
	}
	if decay <= 0 || decay > 1 {
		decay = DefaultDecayFactor
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	value := int(math.Floor(float64(baseScore) * math.Pow(decay, float64(solveIndex))))
	if value < minScore {
		return minScore
	}
	return value
}

// EffectiveDecay 读取配置中的衰减系数，缺省回落到 DefaultDecayFactor
func EffectiveDecay(cfg models.ScoreConfig) float64 {
	if cfg.DecayFactor <= 0 || cfg.DecayFactor > 1 {
		return DefaultDecayFactor
	}
	return cfg.DecayFactor
}

// EffectiveMinScore 读取配置中的保底分数，缺省回落到 DefaultMinScore
func EffectiveMinScore(cfg models.ScoreConfig) int {
	if cfg.MinScore <= 0 {
		return DefaultMinScore
	}
	return cfg.MinScore
}
