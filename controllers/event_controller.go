// file: controllers/event_controller.go
package controllers

import (
	"time"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/models"
	"github.com/Bellic12/RabbitCTF/utils"
	"github.com/gin-gonic/gin"
)

// GetCurrentEvent 查询当前赛事信息；状态由时钟推导
func GetCurrentEvent(c *gin.Context) {
	var event models.Event
	// 平台同一时间只运行一场赛事，约定查询 ID=1
	if err := database.DB.First(&event, 1).Error; err != nil {
		utils.Error(c, 4004, "No active event found")
		return
	}

	now := time.Now()
	utils.Success(c, "success", gin.H{
		"event_id":    event.ID,
		"event_name":  event.EventName,
		"description": event.Description,
		"start_time":  event.StartTime.Format("2006-01-02 15:04:05"),
		"end_time":    event.EndTime.Format("2006-01-02 15:04:05"),
		"status":      event.CurrentStatus(now),
	})
}

// UpsertEvent 管理员创建或更新赛事配置
func UpsertEvent(c *gin.Context) {
	var req models.Event
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body: "+err.Error())
		return
	}
	if !req.EndTime.After(req.StartTime) {
		utils.Error(c, 1001, "end_time must be after start_time")
		return
	}

	var event models.Event
	if err := database.DB.First(&event, 1).Error; err != nil {
		// 尚无赛事记录，创建 ID=1 的唯一一条
		event = models.Event{ID: 1}
	}
	event.EventName = req.EventName
	event.Description = req.Description
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime

	if err := database.DB.Save(&event).Error; err != nil {
		utils.Error(c, 5000, "Failed to save event: "+err.Error())
		return
	}

	// 赛事开始时间是排行榜曲线的原点，改动后清缓存
	invalidateLeaderboardCache()
	utils.Success(c, "Event saved", gin.H{"id": event.ID})
}
