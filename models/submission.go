// file: models/submission.go
package models

import (
	"time"
)

// Submission 对应 rabbitctf_submission 台账表，记录每一次提交（对错均入账）
// 只追加，不改写；唯一例外是对账时就地重写 awarded_score
// 部分唯一索引保证同一 (team_id, challenge_id) 至多一条正确提交
type Submission struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	ChallengeID   uint32    `gorm:"not null;uniqueIndex:idx_submission_team_challenge_unique,priority:2;index:idx_submission_challenge_correct,priority:1;index:idx_submission_user_challenge_time,priority:2" json:"challenge_id"`
	UserID        uint32    `gorm:"not null;index:idx_submission_user_challenge_time,priority:1" json:"user_id"`
	TeamID        uint32    `gorm:"not null;uniqueIndex:idx_submission_team_challenge_unique,priority:1,where:is_correct = true" json:"team_id"`
	SubmittedFlag string    `gorm:"size:255" json:"submitted_flag"`
	IsCorrect     bool      `gorm:"index:idx_submission_challenge_correct,priority:2" json:"is_correct"`
	AwardedScore  int       `json:"awarded_score"` // 仅正确提交有意义；动态题由对账写入
	SubmittedAt   time.Time `gorm:"index;index:idx_submission_user_challenge_time,priority:3" json:"submitted_at"`
	IPAddress     string    `gorm:"size:45" json:"ip_address"`
}

func (Submission) TableName() string {
	return "rabbitctf_submission"
}
