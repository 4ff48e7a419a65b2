// file: controllers/challenge_controller.go
package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/dto"
	"github.com/Bellic12/RabbitCTF/mappers"
	"github.com/Bellic12/RabbitCTF/models"
	"github.com/Bellic12/RabbitCTF/services"
	"github.com/Bellic12/RabbitCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateChallenge —— 管理员创建题目（连同 1:1 计分配置）
func CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body: "+err.Error())
		return
	}
	req.Normalize() // 兼容 camelCase / snake_case

	// 必填校验统一在这里做，避免绑定阶段因别名导致的校验失败
	if req.ChallengeName == "" || req.CategoryID == 0 || req.Author == "" ||
		req.Description == "" || req.BaseScore <= 0 {
		utils.Error(c, 1001, "Missing required fields")
		return
	}
	if req.Mode != "static" && req.Mode != "dynamic" {
		utils.Error(c, 1001, "mode must be static or dynamic")
		return
	}
	if req.Mode == "dynamic" {
		if req.DecayFactor < 0 || req.DecayFactor > 1 {
			utils.Error(c, 1001, "decay_factor must be within (0, 1]")
			return
		}
		if req.MinScore > req.BaseScore {
			utils.Error(c, 1001, "min_score cannot exceed base_score")
			return
		}
	}
	switch req.Difficulty {
	case "easy", "medium", "hard", "insane":
	default:
		utils.Error(c, 1001, "difficulty must be easy/medium/hard/insane")
		return
	}
	if req.Flag == "" {
		// 出题人未提供 Flag 时生成随机 Flag
		req.Flag = utils.GenerateFlag()
	}

	// 分类存在性校验
	var category models.Category
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.Error(c, 4001, "Category not found")
		return
	}

	chal := mappers.MapCreateReqToModel(req)
	if err := database.DB.Create(&chal).Error; err != nil {
		utils.Error(c, 5000, "Failed to create challenge: "+err.Error())
		return
	}
	utils.Success(c, "Challenge created successfully", gin.H{"id": chal.ID, "flag": chal.Flag})
}

// UpdateChallenge —— 管理员更新题目；存在提交记录后计分字段冻结
func UpdateChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body: "+err.Error())
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "Challenge not found")
		return
	}

	if req.TouchesScoring() {
		locked, err := services.ScoringConfigLocked(database.DB, challenge.ID)
		if err != nil {
			utils.Error(c, 5000, "Database error")
			return
		}
		if locked {
			utils.Error(c, 4009, "Cannot modify scoring configuration for challenges with existing submissions")
			return
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.State != nil {
			challenge.State = models.ChallengeState(*req.State)
		}
		if req.Description != nil {
			challenge.Description = *req.Description
		}
		if req.Hint != nil {
			challenge.Hint = *req.Hint
		}
		if req.Difficulty != nil {
			challenge.Difficulty = models.ChallengeDifficulty(*req.Difficulty)
		}
		if req.Flag != nil {
			challenge.Flag = *req.Flag
		}
		if req.CaseSensitive != nil {
			challenge.CaseSensitive = *req.CaseSensitive
		}
		if req.AttemptLimit != nil {
			challenge.AttemptLimit = *req.AttemptLimit
		}
		if req.VisibleFrom != nil {
			challenge.VisibleFrom = req.VisibleFrom
		}
		if req.VisibleUntil != nil {
			challenge.VisibleUntil = req.VisibleUntil
		}

		if req.TouchesScoring() {
			var cfg models.ScoreConfig
			if err := tx.Where("challenge_id = ?", challenge.ID).First(&cfg).Error; err != nil {
				return err
			}
			if req.Mode != nil {
				cfg.Mode = models.ScoringMode(*req.Mode)
			}
			if req.BaseScore != nil {
				cfg.BaseScore = *req.BaseScore
				challenge.CurrentScore = *req.BaseScore
			}
			if req.DecayFactor != nil {
				cfg.DecayFactor = *req.DecayFactor
			}
			if req.MinScore != nil {
				cfg.MinScore = *req.MinScore
			}
			if err := tx.Save(&cfg).Error; err != nil {
				return err
			}
		}
		return tx.Save(&challenge).Error
	})
	if err != nil {
		utils.Error(c, 5000, "Failed to update challenge: "+err.Error())
		return
	}

	utils.Success(c, "Challenge updated successfully", nil)
}

// ListChallenges —— 用户可见的题目列表
func ListChallenges(c *gin.Context) {
	var challenges []models.Challenge
	db := database.DB.Model(&models.Challenge{}).
		Where("state = ?", models.ChallengeStateVisible).
		Preload("Category").
		Preload("ScoreConfig")

	if category := c.Query("category_id"); category != "" {
		db = db.Where("category_id = ?", category)
	}

	if err := db.Find(&challenges).Error; err != nil {
		utils.Error(c, 5000, "Database error")
		return
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, mappers.MapModelToItemResp(ch))
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail —— 用户可见的题目详情（不返回 Flag）
func GetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.Preload("Category").Preload("ScoreConfig").First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "Challenge not found")
		return
	}
	if !challenge.IsAvailable(time.Now()) {
		utils.Error(c, 4003, "Challenge is not available")
		return
	}

	utils.Success(c, "success", mappers.MapModelToDetailResp(challenge))
}

// AdminGetChallengeDetail —— 管理员查询题目详情（不受可见性限制，含 Flag 与计分配置）
func AdminGetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.Preload("Category").Preload("ScoreConfig").First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "Challenge not found")
		return
	}

	utils.Success(c, "success", mappers.MapModelToAdminDetailResp(challenge))
}

// SubmitFlag —— 提交 Flag，核心判分流程全部在 services.SubmitFlag 的事务内完成
func SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body: "+err.Error())
		return
	}
	req.Normalize()

	userIDAny, exists := c.Get("user_id")
	if !exists {
		utils.Error(c, 4001, "Not logged in")
		return
	}
	userID := userIDAny.(uint32)

	result, err := services.SubmitFlag(database.DB, userID, uint32(challengeID), req.Flag, c.ClientIP(), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Error(c, 4004, err.Error())
		case errors.Is(err, services.ErrChallengeNotAvailable):
			utils.Error(c, 4003, err.Error())
		case errors.Is(err, services.ErrNotInTeam):
			utils.Error(c, 3002, err.Error())
		default:
			utils.Error(c, 5000, "Submission failed: "+err.Error())
		}
		return
	}

	// 正确的新解出改变了榜单，清掉排行榜缓存
	if result.IsCorrect && !result.AlreadySolved {
		invalidateLeaderboardCache()
	}

	utils.Success(c, result.Message, result)
}

// RecalculateChallenge —— 管理员手动触发动态分对账（对账幂等，可重复执行到收敛）
func RecalculateChallenge(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	result, err := services.RecalculateChallenge(database.DB, uint32(challengeID))
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			utils.Error(c, 4004, err.Error())
			return
		}
		utils.Error(c, 5000, "Recalculation failed: "+err.Error())
		return
	}

	if result.SubmissionsUpdated > 0 {
		invalidateLeaderboardCache()
	}

	utils.Success(c, "Recalculation completed", result)
}

// GetChallengeStats —— 题目解题统计与一血
func GetChallengeStats(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	stats, err := services.GetChallengeStats(database.DB, uint32(challengeID))
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			utils.Error(c, 4004, err.Error())
			return
		}
		utils.Error(c, 5000, "Database error")
		return
	}

	utils.Success(c, "success", stats)
}

// invalidateLeaderboardCache 清空所有排行榜相关的 Redis 缓存，下次查询回源重建
func invalidateLeaderboardCache() {
	if database.RDB == nil {
		return
	}
	keys, err := database.RDB.Keys(database.Ctx, "leaderboard:*").Result()
	if err == nil && len(keys) > 0 {
		database.RDB.Del(database.Ctx, keys...)
		log.Printf("Cleared %d leaderboard cache keys from Redis.", len(keys))
	}
}
