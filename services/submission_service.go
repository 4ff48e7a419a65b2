// file: services/submission_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bellic12/RabbitCTF/database"
	"github.com/Bellic12/RabbitCTF/models"
	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	StatusCorrect     SubmissionStatus = "correct"
	StatusIncorrect   SubmissionStatus = "incorrect"
	StatusRateLimited SubmissionStatus = "rate_limited"
)

// 提交路径的校验类错误，直接透传给调用方，不重试
var (
	ErrChallengeNotFound     = errors.New("challenge not found")
	ErrChallengeNotAvailable = errors.New("challenge is not available")
	ErrNotInTeam             = errors.New("you must be in a team to submit flags")
	ErrScoringLocked         = errors.New("scoring configuration is locked once submissions exist")
)

// errDuplicateSolve 内部哨兵：并发撞上唯一索引时让事务整体回滚，
// 外层把它转换成 already-solved 的正常结果
var errDuplicateSolve = errors.New("duplicate correct submission")

// SubmissionResult 一次 Flag 提交的结果
type SubmissionResult struct {
	IsCorrect     bool             `json:"is_correct"`
	ScoreAwarded  int              `json:"score_awarded"`
	Message       string           `json:"message"`
	Status        SubmissionStatus `json:"status"`
	IsFirstBlood  bool             `json:"is_first_blood"`
	AlreadySolved bool             `json:"already_solved"`
}

// RecalcResult 一次动态分对账的统计结果
type RecalcResult struct {
	SubmissionsUpdated int            `json:"submissions_updated"`
	TeamsAffected      int            `json:"teams_affected"`
	ScoreDeltas        map[uint32]int `json:"score_deltas"`
}

// SubmitFlag 处理一次 Flag 提交：限流 → 比对 → 入账 → 计分/对账 → 更新队伍总分
//
// 整个流程在单个事务内完成，并对题目行加排他锁：
// 同一题目的提交彼此串行（并发解题不会算出相同的 solve index），
// 不同题目的提交互不阻塞。事务内任何失败都会整体回滚，不留半截状态。
func SubmitFlag(db *gorm.DB, userID, challengeID uint32, flagText, ipAddress string, now time.Time) (SubmissionResult, error) {
	var result SubmissionResult

	err := db.Transaction(func(tx *gorm.DB) error {
		// 对题目行加锁，串行化同一题目上的并发提交
		var challenge models.Challenge
		if err := database.LockForUpdate(tx).First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}
		if !challenge.IsAvailable(now) {
			return ErrChallengeNotAvailable
		}

		// 必须加入队伍
		var membership models.TeamMember
		if err := tx.Where("user_id = ?", userID).First(&membership).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotInTeam
			}
			return err
		}
		teamID := membership.TeamID

		allowed, err := CheckSubmissionRate(tx, userID, challengeID, now)
		if err != nil {
			return err
		}
		if !allowed {
			// 被限流的尝试也入账（空 Flag、记为错误），保证限流历史可审计
			blocked := models.Submission{
				ChallengeID: challengeID,
				UserID:      userID,
				TeamID:      teamID,
				SubmittedAt: now,
				IPAddress:   ipAddress,
			}
			if err := tx.Create(&blocked).Error; err != nil {
				return err
			}
			result = SubmissionResult{
				Status:  StatusRateLimited,
				Message: "Rate limit exceeded. Please wait before submitting again.",
			}
			return nil
		}

		submittedFlag := strings.TrimSpace(flagText)
		isCorrect := MatchFlag(flagText, challenge.Flag, challenge.CaseSensitive)

		if !isCorrect {
			wrong := models.Submission{
				ChallengeID:   challengeID,
				UserID:        userID,
				TeamID:        teamID,
				SubmittedFlag: submittedFlag,
				SubmittedAt:   now,
				IPAddress:     ipAddress,
			}
			if err := tx.Create(&wrong).Error; err != nil {
				return err
			}
			result = SubmissionResult{
				Status:  StatusIncorrect,
				Message: "Incorrect flag. Try again!",
			}
			return nil
		}

		// 同队伍重复解题：行锁之下先查询判重，唯一索引兜底并发窗口
		var duplicates int64
		if err := tx.Model(&models.Submission{}).
			Where("challenge_id = ? AND team_id = ? AND is_correct = ?", challengeID, teamID, true).
			Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			result = alreadySolvedResult()
			return nil
		}

		cfg, err := loadScoreConfig(tx, &challenge)
		if err != nil {
			return err
		}

		// solve index = 此前全部正确提交数
		var solveIndex int64
		if err := tx.Model(&models.Submission{}).
			Where("challenge_id = ? AND is_correct = ?", challengeID, true).
			Count(&solveIndex).Error; err != nil {
			return err
		}
		isFirstBlood := solveIndex == 0

		// 静态题当场计分；动态题先记 0 分，由对账统一写入
		scoreAwarded := 0
		if cfg.Mode != models.ScoringModeDynamic {
			scoreAwarded = CalculateScore(cfg.Mode, cfg.BaseScore, int(solveIndex), EffectiveDecay(cfg), EffectiveMinScore(cfg))
		}

		submission := models.Submission{
			ChallengeID:   challengeID,
			UserID:        userID,
			TeamID:        teamID,
			SubmittedFlag: submittedFlag,
			IsCorrect:     true,
			AwardedScore:  scoreAwarded,
			SubmittedAt:   now,
			IPAddress:     ipAddress,
		}
		if err := tx.Create(&submission).Error; err != nil {
			if isDuplicateSolveError(err) {
				return errDuplicateSolve
			}
			return err
		}

		if cfg.Mode == models.ScoringModeDynamic {
			// 新解出会挤压此前所有解题者的分数，提交事务内同步对账
			if _, err := RecalculateDynamicScores(tx, challengeID); err != nil {
				return err
			}
			// 取回本次提交被对账写入的实际得分
			if err := tx.First(&submission, submission.ID).Error; err != nil {
				return err
			}
			scoreAwarded = submission.AwardedScore
		} else {
			if err := tx.Model(&models.Team{}).Where("id = ?", teamID).
				Update("total_score", gorm.Expr("total_score + ?", scoreAwarded)).Error; err != nil {
				return err
			}
		}

		// 刷新题目的解题计数和展示分（下一名解出者将获得的分数）
		challenge.SolvedCount++
		challenge.CurrentScore = CalculateScore(cfg.Mode, cfg.BaseScore, challenge.SolvedCount, EffectiveDecay(cfg), EffectiveMinScore(cfg))
		if err := tx.Save(&challenge).Error; err != nil {
			return err
		}

		message := fmt.Sprintf("Correct! Your team earned %d points!", scoreAwarded)
		if isFirstBlood {
			message += " FIRST BLOOD!"
		}
		result = SubmissionResult{
			IsCorrect:    true,
			ScoreAwarded: scoreAwarded,
			Message:      message,
			Status:       StatusCorrect,
			IsFirstBlood: isFirstBlood,
		}
		return nil
	})

	if errors.Is(err, errDuplicateSolve) {
		return alreadySolvedResult(), nil
	}
	if err != nil {
		return SubmissionResult{}, err
	}
	return result, nil
}

// RecalculateDynamicScores 按正典顺序 (submitted_at asc, id asc) 重算某道动态题
// 全部正确提交的分数，并把每支队伍的净差额一次性落到 total_score 上
//
// 从台账真值重算，重复执行收敛于同一结果；静态题直接短路返回零工作量
// 必须在持有题目行锁的事务内调用，避免两次并发对账互相交错
func RecalculateDynamicScores(tx *gorm.DB, challengeID uint32) (RecalcResult, error) {
	result := RecalcResult{ScoreDeltas: map[uint32]int{}}

	var cfg models.ScoreConfig
	if err := tx.Where("challenge_id = ?", challengeID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return result, err
	}
	if cfg.Mode != models.ScoringModeDynamic {
		return result, nil
	}

	var solves []models.Submission
	if err := tx.Where("challenge_id = ? AND is_correct = ?", challengeID, true).
		Order("submitted_at asc, id asc").
		Find(&solves).Error; err != nil {
		return result, err
	}

	decay := EffectiveDecay(cfg)
	minScore := EffectiveMinScore(cfg)

	for i := range solves {
		newScore := CalculateScore(models.ScoringModeDynamic, cfg.BaseScore, i, decay, minScore)
		delta := newScore - solves[i].AwardedScore
		if delta == 0 {
			continue
		}
		if err := tx.Model(&models.Submission{}).Where("id = ?", solves[i].ID).
			Update("awarded_score", newScore).Error; err != nil {
			return result, err
		}
		result.SubmissionsUpdated++
		result.ScoreDeltas[solves[i].TeamID] += delta
	}

	// 每队的净差额只应用一次
	for teamID, delta := range result.ScoreDeltas {
		if err := tx.Model(&models.Team{}).Where("id = ?", teamID).
			Update("total_score", gorm.Expr("total_score + ?", delta)).Error; err != nil {
			return result, err
		}
	}
	result.TeamsAffected = len(result.ScoreDeltas)
	return result, nil
}

// RecalculateChallenge 管理员手动触发的对账入口，自带事务和题目行锁
// 对账失败是可重试的瞬态故障，重跑到收敛即可
func RecalculateChallenge(db *gorm.DB, challengeID uint32) (RecalcResult, error) {
	var result RecalcResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := database.LockForUpdate(tx).First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}
		var err error
		result, err = RecalculateDynamicScores(tx, challengeID)
		return err
	})
	return result, err
}

// ScoringConfigLocked 题目存在任何提交记录后，计分配置即冻结
func ScoringConfigLocked(db *gorm.DB, challengeID uint32) (bool, error) {
	var count int64
	err := db.Model(&models.Submission{}).Where("challenge_id = ?", challengeID).Count(&count).Error
	return count > 0, err
}

// DeleteSubmission 管理员显式删除一条提交记录
// 正确提交被删除时同步回退队伍总分、重算动态分并修正题目计数
func DeleteSubmission(db *gorm.DB, submissionID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		if err := tx.First(&sub, submissionID).Error; err != nil {
			return err
		}

		// 与提交路径互斥，同样锁定题目行
		var challenge models.Challenge
		if err := database.LockForUpdate(tx).First(&challenge, sub.ChallengeID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Submission{}, sub.ID).Error; err != nil {
			return err
		}

		if !sub.IsCorrect {
			return nil
		}

		if sub.AwardedScore != 0 {
			if err := tx.Model(&models.Team{}).Where("id = ?", sub.TeamID).
				Update("total_score", gorm.Expr("total_score - ?", sub.AwardedScore)).Error; err != nil {
				return err
			}
		}
		// 删除后其余解题者的位次前移，动态分需要重新对账
		if _, err := RecalculateDynamicScores(tx, sub.ChallengeID); err != nil {
			return err
		}

		cfg, err := loadScoreConfig(tx, &challenge)
		if err != nil {
			return err
		}
		if challenge.SolvedCount > 0 {
			challenge.SolvedCount--
		}
		challenge.CurrentScore = CalculateScore(cfg.Mode, cfg.BaseScore, challenge.SolvedCount, EffectiveDecay(cfg), EffectiveMinScore(cfg))
		return tx.Save(&challenge).Error
	})
}

// loadScoreConfig 读取题目的计分配置；历史数据缺失配置时按静态题处理
func loadScoreConfig(tx *gorm.DB, challenge *models.Challenge) (models.ScoreConfig, error) {
	var cfg models.ScoreConfig
	err := tx.Where("challenge_id = ?", challenge.ID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ScoreConfig{
			ChallengeID: challenge.ID,
			Mode:        models.ScoringModeStatic,
			BaseScore:   challenge.CurrentScore,
		}, nil
	}
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func alreadySolvedResult() SubmissionResult {
	return SubmissionResult{
		IsCorrect:     true,
		Status:        StatusCorrect,
		AlreadySolved: true,
		Message:       "Challenge already solved by your team!",
	}
}

func isDuplicateSolveError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "idx_submission_team_challenge_unique") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
