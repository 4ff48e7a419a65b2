// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeState string
type ChallengeDifficulty string

const (
	ChallengeStateVisible ChallengeState = "visible"
	ChallengeStateHidden  ChallengeState = "hidden"

	ChallengeDifficultyEasy   ChallengeDifficulty = "easy"
	ChallengeDifficultyMedium ChallengeDifficulty = "medium"
	ChallengeDifficultyHard   ChallengeDifficulty = "hard"
	ChallengeDifficultyInsane ChallengeDifficulty = "insane"
)

// Challenge 对应 rabbitctf_challenge 表
// Flag 明文存储、明文比对（出题方可信，不做密文管理）
// 计分配置在 ScoreConfig 中，一旦出现提交记录即冻结
type Challenge struct {
	ID            uint32              `gorm:"primarykey"`
	ChallengeName string              `gorm:"size:100;unique;not null"`
	CategoryID    uint32              `gorm:"not null"`
	Category      Category            `gorm:"foreignKey:CategoryID"`
	Author        string              `gorm:"size:50;not null"`
	Description   string              `gorm:"type:text;not null"`
	Hint          string              `gorm:"type:text"`
	State         ChallengeState      `gorm:"size:20;default:'hidden'"`
	VisibleFrom   *time.Time          ``
	VisibleUntil  *time.Time          ``
	Difficulty    ChallengeDifficulty `gorm:"size:20;default:'medium'"`
	Flag          string              `gorm:"size:255;not null"`
	CaseSensitive bool                `gorm:"default:true"`
	AttemptLimit  int                 `gorm:"default:0"` // 0 = 不限制（名义上限，提交路径不强制）
	CurrentScore  int                 `gorm:"not null"`  // 下一名解出者将获得的分数，用于列表展示
	SolvedCount   int                 `gorm:"default:0"`
	ScoreConfig   ScoreConfig         `gorm:"foreignKey:ChallengeID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Challenge) TableName() string {
	return "rabbitctf_challenge"
}

// IsAvailable 题目当前是否可以提交：必须可见，且处于可见时间窗口内（若配置了窗口）
func (ch *Challenge) IsAvailable(now time.Time) bool {
	if ch.State != ChallengeStateVisible {
		return false
	}
	if ch.VisibleFrom != nil && now.Before(*ch.VisibleFrom) {
		return false
	}
	if ch.VisibleUntil != nil && now.After(*ch.VisibleUntil) {
		return false
	}
	return true
}
