// file: controllers/user_controller.go
package controllers

import (
	"strconv"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/models"
	"github.com/Bellic12/RabbitCTF/utils"
	"github.com/gin-gonic/gin"
)

// --- 公开接口 ---

func Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&user).Error; err == nil {
		utils.Error(c, 2001, "Username or email already registered")
		return
	}

	newUser := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		utils.Error(c, 5000, "Database error: "+err.Error())
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"id":       newUser.ID,
		"username": newUser.Username,
		"role":     newUser.Role,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// 不区分“不存在”和“密码错误”，避免账号枚举
		utils.Error(c, 2002, "Invalid email or password")
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Error(c, 2002, "Invalid email or password")
		return
	}

	if user.Status == models.StatusBanned {
		utils.Error(c, 2005, "User is banned")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Error(c, 5002, "Failed to generate token")
		return
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// --- 需要登录的接口 ---

// GetUserDetail 查询用户信息；附带所在队伍（如果有）
func GetUserDetail(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Param("id"))

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.Error(c, 4004, "User not found")
		return
	}

	resp := gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"role":       user.Role,
		"status":     user.Status,
		"created_at": user.CreatedAt,
	}

	var membership models.TeamMember
	if err := database.DB.Where("user_id = ?", user.ID).First(&membership).Error; err == nil {
		var team models.Team
		if err := database.DB.First(&team, membership.TeamID).Error; err == nil {
			resp["team"] = gin.H{
				"id":          team.ID,
				"team_name":   team.TeamName,
				"total_score": team.TotalScore,
				"role":        membership.Role,
			}
		}
	}

	utils.Success(c, "success", resp)
}

// --- 管理员接口 ---

func GetUserList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	db := database.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		db = db.Where("username LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	db.Order("id asc").Offset((page - 1) * limit).Limit(limit).Find(&users)

	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"users": users,
	})
}

// UpdateUserStatus 封禁/解封用户
func UpdateUserStatus(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body")
		return
	}
	if req.Status != string(models.StatusActive) && req.Status != string(models.StatusBanned) {
		utils.Error(c, 1001, "status must be active or banned")
		return
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("status", req.Status)
	if result.Error != nil {
		utils.Error(c, 5000, "Database update failed: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "User not found")
		return
	}

	utils.Success(c, "User status updated", nil)
}
