// file: models/team_member.go
package models

import "time"

// 自定义队伍角色类型
type TeamMemberRole string

const (
	TeamRoleCaptain TeamMemberRole = "captain"
	TeamRoleMember  TeamMemberRole = "member"
)

// TeamMember 队伍成员关系。user_id 全局唯一：一个用户同一时间只能在一支队伍
type TeamMember struct {
	ID       uint32         `gorm:"primarykey" json:"id"`
	TeamID   uint32         `gorm:"index;not null" json:"team_id"`
	UserID   uint32         `gorm:"uniqueIndex:unique_member_user;not null" json:"user_id"`
	User     User           `gorm:"foreignKey:UserID" json:"user"`
	Role     TeamMemberRole `gorm:"size:20;default:'member'" json:"role"`
	JoinedAt time.Time      `json:"joined_at"`
}

func (TeamMember) TableName() string {
	return "rabbitctf_team_members"
}
