// file: models/event.go
package models

import (
	"time"
)

// EventStatus 定义赛事状态
type EventStatus string

const (
	EventStatusNotStarted EventStatus = "not_started"
	EventStatusActive     EventStatus = "active"
	EventStatusFinished   EventStatus = "finished"
)

// Event 对应 rabbitctf_event 表（平台同一时间只运行一场赛事，约定查询 ID=1）
// StartTime 同时是排行榜时间曲线的公共原点
type Event struct {
	ID          uint      `gorm:"primarykey" json:"id,omitempty"`
	EventName   string    `gorm:"size:100;not null" json:"event_name"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime     time.Time `gorm:"not null" json:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

func (Event) TableName() string {
	return "rabbitctf_event"
}

// CurrentStatus 根据时钟推导赛事状态
func (e *Event) CurrentStatus(now time.Time) EventStatus {
	if now.Before(e.StartTime) {
		return EventStatusNotStarted
	}
	if now.After(e.EndTime) {
		return EventStatusFinished
	}
	return EventStatusActive
}
