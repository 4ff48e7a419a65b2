// file: controllers/submission_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/models"
	"github.com/Bellic12/RabbitCTF/services"
	"github.com/Bellic12/RabbitCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetSubmissionLogs 管理员查询 Flag 提交台账（支持按队伍/题目/用户/结果筛选）
func GetSubmissionLogs(c *gin.Context) {
	type LogDetail struct {
		ID            uint64 `json:"id"`
		ChallengeID   uint32 `json:"challenge_id"`
		ChallengeName string `json:"challenge_name"`
		TeamID        uint32 `json:"team_id"`
		TeamName      string `json:"team_name"`
		UserID        uint32 `json:"user_id"`
		Username      string `json:"username"`
		SubmittedFlag string `json:"submitted_flag"`
		IsCorrect     bool   `json:"is_correct"`
		AwardedScore  int    `json:"awarded_score"`
		SubmittedAt   string `json:"submitted_at"`
		IPAddress     string `json:"ip_address"`
	}

	db := database.DB.Table("rabbitctf_submission s").
		Select("s.id, s.challenge_id, c.challenge_name, s.team_id, t.team_name, s.user_id, u.username, s.submitted_flag, s.is_correct, s.awarded_score, s.submitted_at, s.ip_address").
		Joins("LEFT JOIN rabbitctf_challenge c ON s.challenge_id = c.id").
		Joins("LEFT JOIN rabbitctf_team t ON s.team_id = t.id").
		Joins("LEFT JOIN rabbitctf_user u ON s.user_id = u.id")

	if teamID := c.Query("team_id"); teamID != "" {
		db = db.Where("s.team_id = ?", teamID)
	}
	if challengeID := c.Query("challenge_id"); challengeID != "" {
		db = db.Where("s.challenge_id = ?", challengeID)
	}
	if userID := c.Query("user_id"); userID != "" {
		db = db.Where("s.user_id = ?", userID)
	}
	if correct := c.Query("correct"); correct != "" {
		db = db.Where("s.is_correct = ?", correct == "1" || correct == "true")
	}

	var results []LogDetail
	db.Order("s.submitted_at desc").Limit(500).Find(&results)

	utils.Success(c, "success", results)
}

// DeleteSubmission 管理员删除一条提交记录
// 删除正确提交会同步回退队伍总分并触发对账，保证 total_score 不变式
func DeleteSubmission(c *gin.Context) {
	submissionID, _ := strconv.Atoi(c.Param("id"))

	err := services.DeleteSubmission(database.DB, uint64(submissionID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, 4004, "Submission not found")
			return
		}
		utils.Error(c, 5000, "Failed to delete submission: "+err.Error())
		return
	}

	invalidateLeaderboardCache()
	utils.Success(c, "Submission deleted", nil)
}

// GetRecentSolves 查询最近的解题动态（直接扫台账，不维护单独的缓存表）
func GetRecentSolves(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	type SolveEntry struct {
		ChallengeID   uint32 `json:"challenge_id"`
		ChallengeName string `json:"challenge_name"`
		TeamID        uint32 `json:"team_id"`
		TeamName      string `json:"team_name"`
		AwardedScore  int    `json:"awarded_score"`
		SubmittedAt   string `json:"submitted_at"`
	}

	var results []SolveEntry
	database.DB.Table("rabbitctf_submission s").
		Select("s.challenge_id, c.challenge_name, s.team_id, t.team_name, s.awarded_score, s.submitted_at").
		Joins("JOIN rabbitctf_challenge c ON s.challenge_id = c.id").
		Joins("JOIN rabbitctf_team t ON s.team_id = t.id").
		Where("s.is_correct = ?", true).
		Order("s.submitted_at desc").
		Limit(limit).
		Find(&results)

	utils.Success(c, "success", results)
}

// GetMySubmissions 查询当前用户自己的提交历史
func GetMySubmissions(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var submissions []models.Submission
	database.DB.Where("user_id = ?", userID).
		Order("submitted_at desc").
		Limit(limit).
		Find(&submissions)

	utils.Success(c, "success", submissions)
}
