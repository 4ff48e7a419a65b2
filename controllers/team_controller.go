// file: controllers/team_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/models"
	"github.com/Bellic12/RabbitCTF/services"
	"github.com/Bellic12/RabbitCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// isUserInTeam 是一个辅助函数，检查用户是否已在队伍中
func isUserInTeam(userID uint32) (bool, error) {
	var count int64
	err := database.DB.Model(&models.TeamMember{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func CreateTeam(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	inTeam, err := isUserInTeam(userID)
	if err != nil {
		utils.Error(c, 5000, "Database error")
		return
	}
	if inTeam {
		utils.Error(c, 3001, "User already in a team")
		return
	}

	var req struct {
		TeamName     string `json:"team_name" binding:"required"`
		TeamDescribe string `json:"team_describe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body")
		return
	}

	var existingTeam models.Team
	if err := database.DB.Where("team_name = ?", req.TeamName).First(&existingTeam).Error; err == nil {
		utils.Error(c, 3001, "Team name already exists")
		return
	}

	newTeam := models.Team{
		TeamName:       req.TeamName,
		CaptainID:      userID,
		InvitationCode: utils.GenerateInvitationCode(12),
		TeamDescribe:   req.TeamDescribe,
	}

	// 建队与队长成员记录在同一事务内写入
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newTeam).Error; err != nil {
			return err
		}
		captainMember := models.TeamMember{
			TeamID:   newTeam.ID,
			UserID:   userID,
			Role:     models.TeamRoleCaptain,
			JoinedAt: time.Now(),
		}
		return tx.Create(&captainMember).Error
	})
	if err != nil {
		utils.Error(c, 5000, "Failed to create team: "+err.Error())
		return
	}

	utils.Success(c, "Team created successfully", gin.H{
		"id":              newTeam.ID,
		"team_name":       newTeam.TeamName,
		"invitation_code": newTeam.InvitationCode,
	})
}

func JoinTeam(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	inTeam, err := isUserInTeam(userID)
	if err != nil {
		utils.Error(c, 5000, "Database error")
		return
	}
	if inTeam {
		utils.Error(c, 3001, "User already in a team")
		return
	}

	var req struct {
		InvitationCode string `json:"invitation_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body")
		return
	}

	var team models.Team
	if err := database.DB.Where("invitation_code = ?", req.InvitationCode).First(&team).Error; err != nil {
		utils.Error(c, 3003, "Invalid invitation code")
		return
	}

	member := models.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     models.TeamRoleMember,
		JoinedAt: time.Now(),
	}
	if err := database.DB.Create(&member).Error; err != nil {
		utils.Error(c, 5000, "Failed to join team: "+err.Error())
		return
	}

	utils.Success(c, "Joined team successfully", gin.H{
		"team_id":   team.ID,
		"team_name": team.TeamName,
	})
}

func LeaveTeam(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var membership models.TeamMember
	if err := database.DB.Where("user_id = ?", userID).First(&membership).Error; err != nil {
		utils.Error(c, 3002, "You are not in a team")
		return
	}

	// 队长不能直接退队，必须先解散或移交
	if membership.Role == models.TeamRoleCaptain {
		utils.Error(c, 3004, "Captain cannot leave the team")
		return
	}

	if err := database.DB.Delete(&models.TeamMember{}, membership.ID).Error; err != nil {
		utils.Error(c, 5000, "Failed to leave team: "+err.Error())
		return
	}

	utils.Success(c, "Left team successfully", nil)
}

// GetTeamDetail 查询队伍详情与统计（排名、解题数、总提交数）
func GetTeamDetail(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	var team models.Team
	if err := database.DB.Preload("Members.User").First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "Team not found")
		return
	}

	rank, err := services.GetTeamRank(database.DB, team)
	if err != nil {
		utils.Error(c, 5000, "Database error")
		return
	}

	var solves int64
	database.DB.Model(&models.Submission{}).
		Where("team_id = ? AND is_correct = ?", team.ID, true).
		Count(&solves)

	var attempts int64
	database.DB.Model(&models.Submission{}).
		Where("team_id = ?", team.ID).
		Count(&attempts)

	members := make([]gin.H, 0, len(team.Members))
	for _, m := range team.Members {
		members = append(members, gin.H{
			"id":        m.User.ID,
			"username":  m.User.Username,
			"role":      m.Role,
			"joined_at": m.JoinedAt,
		})
	}

	utils.Success(c, "success", gin.H{
		"id":             team.ID,
		"team_name":      team.TeamName,
		"team_describe":  team.TeamDescribe,
		"total_score":    team.TotalScore,
		"rank":           rank,
		"solves":         solves,
		"total_attempts": attempts,
		"members":        members,
	})
}

// GetTeamSolves 查询队伍解题记录（仅正确提交，按解题时间排列）
func GetTeamSolves(c *gin.Context) {
	teamID, _ := strconv.Atoi(c.Param("id"))

	var solves []models.Submission
	database.DB.Where("team_id = ? AND is_correct = ?", teamID, true).
		Order("submitted_at asc, id asc").
		Find(&solves)

	type SolveInfo struct {
		ChallengeID   uint32 `json:"challenge_id"`
		ChallengeName string `json:"challenge_name"`
		Score         int    `json:"score"`
		SolvedAt      string `json:"solved_at"`
	}
	var result []SolveInfo
	for _, solve := range solves {
		var chal models.Challenge
		database.DB.Select("challenge_name").First(&chal, solve.ChallengeID)
		result = append(result, SolveInfo{
			ChallengeID:   solve.ChallengeID,
			ChallengeName: chal.ChallengeName,
			Score:         solve.AwardedScore,
			SolvedAt:      solve.SubmittedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", result)
}
