// file: services/leaderboard_service.go
package services

import (
	"errors"
	"sort"
	"time"

	"github.com/Bellic12/RabbitCTF/models"
	"gorm.io/gorm"
)

// TimelineNudge 同队相邻两点时间戳相同或倒退时（回灌的历史数据会出现），
// 仅把后一点的展示时间向后挪固定步长，保证曲线横轴单调；不改动存储数据
const TimelineNudge = time.Minute

// ScorePoint 队伍得分曲线上的一个点
type ScorePoint struct {
	Time  time.Time `json:"time"`
	Score int       `json:"score"`
}

// LeaderboardEntry 排行榜中一支队伍的投影
type LeaderboardEntry struct {
	TeamID        uint32       `json:"team_id"`
	TeamName      string       `json:"team_name"`
	TotalScore    int          `json:"total_score"`
	SolveCount    int          `json:"solve_count"`
	LastSolveTime *time.Time   `json:"last_solve_time"`
	Timeline      []ScorePoint `json:"timeline"`
}

// ChallengeStats 单个题目的统计信息
type ChallengeStats struct {
	ChallengeID   uint32             `json:"challenge_id"`
	ChallengeName string             `json:"challenge_name"`
	Solves        int64              `json:"solves"`
	Attempts      int64              `json:"attempts"`
	SolveRate     float64            `json:"solve_rate"`
	FirstBlood    *models.Submission `json:"first_blood,omitempty"`
}

// ProjectLeaderboard 从提交台账和队伍总分投影完整排行榜
//
// total_score 直接读队伍表的权威缓存（不从台账重算）；
// 时间曲线按正典顺序 (submitted_at, id) 扫描全部正确提交逐队累加得到
// 排序：总分降序，同分者最后解题时间早的在前
func ProjectLeaderboard(db *gorm.DB) ([]LeaderboardEntry, error) {
	var teams []models.Team
	if err := db.Order("total_score desc, team_name asc").Find(&teams).Error; err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []LeaderboardEntry{}, nil
	}

	// 每队正确提交数与最后解题时间，一次聚合查询取回
	type solveStats struct {
		TeamID    uint32
		Solves    int
		LastSolve time.Time
	}
	var stats []solveStats
	if err := db.Model(&models.Submission{}).
		Select("team_id, COUNT(id) as solves, MAX(submitted_at) as last_solve").
		Where("is_correct = ?", true).
		Group("team_id").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	statsMap := make(map[uint32]solveStats, len(stats))
	for _, s := range stats {
		statsMap[s.TeamID] = s
	}

	// 按正典顺序扫描全部正确提交，构建每队的累计得分曲线
	var rows []models.Submission
	if err := db.Where("is_correct = ?", true).
		Order("submitted_at asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	timelines := make(map[uint32][]ScorePoint)
	for _, row := range rows {
		points := timelines[row.TeamID]
		previous := 0
		if len(points) > 0 {
			previous = points[len(points)-1].Score
		}
		pointTime := row.SubmittedAt
		if len(points) > 0 && !pointTime.After(points[len(points)-1].Time) {
			pointTime = points[len(points)-1].Time.Add(TimelineNudge)
		}
		timelines[row.TeamID] = append(points, ScorePoint{Time: pointTime, Score: previous + row.AwardedScore})
	}

	eventStart := eventStartTime(db)

	entries := make([]LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		teamStats, hasStats := statsMap[team.ID]
		timeline := timelines[team.ID]

		if len(timeline) == 0 {
			// 还没有解题的队伍也要有曲线起点
			origin := team.CreatedAt
			if eventStart != nil {
				origin = *eventStart
			}
			timeline = []ScorePoint{{Time: origin, Score: 0}}
		} else if eventStart != nil && timeline[0].Time.After(*eventStart) {
			// 所有队伍的曲线从赛事开始时刻的 0 分出发
			timeline = append([]ScorePoint{{Time: *eventStart, Score: 0}}, timeline...)
		}

		entry := LeaderboardEntry{
			TeamID:     team.ID,
			TeamName:   team.TeamName,
			TotalScore: team.TotalScore,
			Timeline:   timeline,
		}
		if hasStats {
			entry.SolveCount = teamStats.Solves
			lastSolve := teamStats.LastSolve
			entry.LastSolveTime = &lastSolve
		}
		entries = append(entries, entry)
	}

	// 总分相同时，更早达到该分数（最后解题更早）的队伍排前面
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		li, lj := entries[i].LastSolveTime, entries[j].LastSolveTime
		if li == nil {
			return false
		}
		if lj == nil {
			return true
		}
		return li.Before(*lj)
	})

	return entries, nil
}

// GetChallengeStats 查询单个题目的解题统计和一血
func GetChallengeStats(db *gorm.DB, challengeID uint32) (ChallengeStats, error) {
	var challenge models.Challenge
	if err := db.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChallengeStats{}, ErrChallengeNotFound
		}
		return ChallengeStats{}, err
	}

	stats := ChallengeStats{
		ChallengeID:   challenge.ID,
		ChallengeName: challenge.ChallengeName,
	}

	if err := db.Model(&models.Submission{}).
		Where("challenge_id = ? AND is_correct = ?", challengeID, true).
		Count(&stats.Solves).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Submission{}).
		Where("challenge_id = ?", challengeID).
		Count(&stats.Attempts).Error; err != nil {
		return stats, err
	}
	if stats.Attempts > 0 {
		stats.SolveRate = float64(stats.Solves) / float64(stats.Attempts) * 100
	}

	// 一血：正典顺序下最早的正确提交
	var firstBlood models.Submission
	err := db.Where("challenge_id = ? AND is_correct = ?", challengeID, true).
		Order("submitted_at asc, id asc").
		First(&firstBlood).Error
	if err == nil {
		stats.FirstBlood = &firstBlood
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return stats, err
	}

	return stats, nil
}

// GetTeamRank 队伍当前排名 = 总分更高的队伍数 + 1
func GetTeamRank(db *gorm.DB, team models.Team) (int64, error) {
	var higher int64
	err := db.Model(&models.Team{}).Where("total_score > ?", team.TotalScore).Count(&higher).Error
	return higher + 1, err
}

// eventStartTime 读取赛事开始时间作为时间曲线的公共原点，未配置时返回 nil
func eventStartTime(db *gorm.DB) *time.Time {
	var event models.Event
	if err := db.Order("start_time asc").First(&event).Error; err != nil {
		return nil
	}
	if event.StartTime.IsZero() {
		return nil
	}
	start := event.StartTime
	return &start
}
