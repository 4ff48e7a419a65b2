// file: services/rate_limiter.go
package services

import (
	"time"

	"github.com/Bellic12/RabbitCTF/models"
	"gorm.io/gorm"
)

// 滑动窗口限流参数：同一用户对同一题目 60 秒内至多 3 次提交
const (
	SubmissionRateWindow = 60 * time.Second
	SubmissionRateLimit  = 3
)

// CheckSubmissionRate 统计窗口内该用户对该题目已入账的提交次数，判断本次是否放行
// 台账查询失败按拒绝处理（fail closed），宁可误伤也不能让限流失效
func CheckSubmissionRate(tx *gorm.DB, userID, challengeID uint32, now time.Time) (bool, error) {
	var count int64
	err := tx.Model(&models.Submission{}).
		Where("user_id = ? AND challenge_id = ? AND submitted_at >= ?",
			userID, challengeID, now.Add(-SubmissionRateWindow)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count < SubmissionRateLimit, nil
}
