// file: models/category.go
package models

import (
	"time"
)

// Category 题目分类（web / pwn / crypto / misc ...）
type Category struct {
	ID           uint32    `gorm:"primarykey" json:"id"`
	CategoryName string    `gorm:"size:50;unique;not null" json:"category_name"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "rabbitctf_category"
}
