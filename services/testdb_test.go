// file: services/testdb_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Bellic12/RabbitCTF/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试用例一个独立的内存库，结束后自动丢弃
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Category{},
		&models.Challenge{},
		&models.ScoreConfig{},
		&models.Submission{},
		&models.Event{},
	)
	require.NoError(t, err)
	return db
}

// createTestUser 创建一个测试用户
func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Password: "password123",
		Email:    username + "@test.local",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// createTestTeam 创建一支队伍并把 captain 拉入成员表
func createTestTeam(t *testing.T, db *gorm.DB, teamName string, captain models.User) models.Team {
	t.Helper()
	team := models.Team{
		TeamName:       teamName,
		CaptainID:      captain.ID,
		InvitationCode: fmt.Sprintf("INV-%s", teamName),
	}
	require.NoError(t, db.Create(&team).Error)
	member := models.TeamMember{
		TeamID:   team.ID,
		UserID:   captain.ID,
		Role:     models.TeamRoleCaptain,
		JoinedAt: time.Now(),
	}
	require.NoError(t, db.Create(&member).Error)
	return team
}

// createSoloPlayer 用户 + 单人队伍，一步到位
func createSoloPlayer(t *testing.T, db *gorm.DB, name string) (models.User, models.Team) {
	t.Helper()
	user := createTestUser(t, db, name)
	team := createTestTeam(t, db, "team-"+name, user)
	return user, team
}

// createTestChallenge 创建一道可见的题目及其计分配置
func createTestChallenge(t *testing.T, db *gorm.DB, name string, cfg models.ScoreConfig) models.Challenge {
	t.Helper()
	category := models.Category{CategoryName: "misc-" + name}
	require.NoError(t, db.Create(&category).Error)

	challenge := models.Challenge{
		ChallengeName: name,
		CategoryID:    category.ID,
		Author:        "tester",
		Description:   "test challenge",
		State:         models.ChallengeStateVisible,
		Flag:          "RabbitCTF{" + name + "}",
		CaseSensitive: true,
		CurrentScore:  cfg.BaseScore,
		ScoreConfig:   cfg,
	}
	require.NoError(t, db.Create(&challenge).Error)
	return challenge
}

// teamTotal 读取队伍表里的权威总分缓存
func teamTotal(t *testing.T, db *gorm.DB, teamID uint32) int {
	t.Helper()
	var team models.Team
	require.NoError(t, db.First(&team, teamID).Error)
	return team.TotalScore
}

// ledgerSum 从提交台账重算该队总分，用于核对缓存一致性
func ledgerSum(t *testing.T, db *gorm.DB, teamID uint32) int {
	t.Helper()
	var sum int64
	require.NoError(t, db.Model(&models.Submission{}).
		Where("team_id = ? AND is_correct = ?", teamID, true).
		Select("COALESCE(SUM(awarded_score), 0)").
		Scan(&sum).Error)
	return int(sum)
}

// requireLedgerConsistent 不变量：total_score 缓存必须等于台账求和
func requireLedgerConsistent(t *testing.T, db *gorm.DB, teamIDs ...uint32) {
	t.Helper()
	for _, id := range teamIDs {
		require.Equal(t, ledgerSum(t, db, id), teamTotal(t, db, id),
			"team %d total_score cache diverged from submission ledger", id)
	}
}
