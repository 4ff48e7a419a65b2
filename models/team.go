// file: models/team.go
package models

import (
	"time"
)

// Team 对应 rabbitctf_team 表
// TotalScore 是该队全部正确提交 awarded_score 之和的权威缓存，
// 只能经由提交/对账路径修改，任何时刻都必须与提交台账一致
type Team struct {
	ID             uint32       `gorm:"primarykey" json:"id"`
	TeamName       string       `gorm:"size:100;unique;not null" json:"team_name"`
	CaptainID      uint32       `gorm:"not null" json:"captain_id"`
	Captain        User         `gorm:"foreignKey:CaptainID" json:"captain"`
	TotalScore     int          `gorm:"not null;default:0;index" json:"total_score"`
	InvitationCode string       `gorm:"size:20;unique;not null" json:"invitation_code"`
	TeamDescribe   string       `gorm:"type:text" json:"team_describe"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Members        []TeamMember `gorm:"foreignKey:TeamID" json:"members"`
}

func (Team) TableName() string {
	return "rabbitctf_team"
}
