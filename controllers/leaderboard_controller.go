// file: controllers/leaderboard_controller.go
package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/services"
	"github.com/Bellic12/RabbitCTF/utils"
	"github.com/gin-gonic/gin"
)

// GetLeaderboard 查询排行榜（从台账实时投影，Redis 短缓存兜住轮询压力）
func GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// 1. 尝试从 Redis 获取缓存
	cacheKey := "leaderboard:" + strconv.Itoa(limit)
	if database.RDB != nil {
		val, err := database.RDB.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var cached []services.LeaderboardEntry
			if json.Unmarshal([]byte(val), &cached) == nil {
				utils.Success(c, "success (from cache)", gin.H{"teams": cached})
				return
			}
		}
	}

	entries, err := services.ProjectLeaderboard(database.DB)
	if err != nil {
		utils.Error(c, 5000, "Failed to build leaderboard")
		return
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	// 2. 缓存未命中时写回 Redis，15 秒过期保证准实时性
	if database.RDB != nil {
		if jsonData, err := json.Marshal(entries); err == nil {
			database.RDB.Set(database.Ctx, cacheKey, jsonData, 15*time.Second)
		}
	}

	utils.Success(c, "success", gin.H{"teams": entries})
}
