// file: models/score_config.go
package models

// ScoringMode 计分模式
type ScoringMode string

const (
	ScoringModeStatic  ScoringMode = "static"
	ScoringModeDynamic ScoringMode = "dynamic"
)

// ScoreConfig 与题目 1:1 的计分配置
// 题目存在任何提交记录后 base_score / mode / decay_factor / min_score 均不可再修改
type ScoreConfig struct {
	ChallengeID uint32      `gorm:"primarykey" json:"challenge_id"`
	Mode        ScoringMode `gorm:"size:20;not null;default:'static'" json:"mode"`
	BaseScore   int         `gorm:"not null" json:"base_score"`
	DecayFactor float64     `json:"decay_factor"` // 仅 dynamic 有效，(0, 1]
	MinScore    int         `json:"min_score"`    // 仅 dynamic 有效，衰减下限
}

func (ScoreConfig) TableName() string {
	return "rabbitctf_score_config"
}
