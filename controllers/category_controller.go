// file: controllers/category_controller.go
package controllers

import (
	"strconv"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/models"
	"github.com/Bellic12/RabbitCTF/utils"
	"github.com/gin-gonic/gin"
)

// CreateCategory 新增题目分类
func CreateCategory(c *gin.Context) {
	var req struct {
		CategoryName string `json:"category_name" binding:"required"`
		Description  string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Invalid request body: "+err.Error())
		return
	}

	var existing models.Category
	if err := database.DB.Where("category_name = ?", req.CategoryName).First(&existing).Error; err == nil {
		utils.Error(c, 4001, "Category already exists")
		return
	}

	newCategory := models.Category{
		CategoryName: req.CategoryName,
		Description:  req.Description,
	}

	if err := database.DB.Create(&newCategory).Error; err != nil {
		utils.Error(c, 5000, "Database error: "+err.Error())
		return
	}

	utils.Success(c, "Category created successfully", gin.H{
		"id":            newCategory.ID,
		"category_name": newCategory.CategoryName,
	})
}

// GetCategoryList 查询题目分类列表
func GetCategoryList(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("id asc").Find(&categories).Error; err != nil {
		utils.Error(c, 5000, "Database error")
		return
	}

	utils.Success(c, "success", gin.H{
		"total":      len(categories),
		"categories": categories,
	})
}

// DeleteCategory 删除分类；仍有题目挂在该分类下时拒绝
func DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "Invalid category id")
		return
	}

	var count int64
	if err := database.DB.Model(&models.Challenge{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		utils.Error(c, 5000, "Database error")
		return
	}
	if count > 0 {
		utils.Error(c, 4002, "Category still has challenges")
		return
	}

	result := database.DB.Delete(&models.Category{}, categoryID)
	if result.Error != nil {
		utils.Error(c, 5000, "Database error: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "Category not found")
		return
	}

	utils.Success(c, "Category deleted", nil)
}
