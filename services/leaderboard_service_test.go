// file: services/leaderboard_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/Bellic12/RabbitCTF/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLeaderboardRanking(t *testing.T) {
	db := setupTestDB(t)
	alice, teamA := createSoloPlayer(t, db, "alice")
	bob, teamB := createSoloPlayer(t, db, "bob")
	_, teamC := createSoloPlayer(t, db, "carol")

	ch1 := createTestChallenge(t, db, "lb1", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 100})
	ch2 := createTestChallenge(t, db, "lb2", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 300})

	_, err := SubmitFlag(db, alice.ID, ch1.ID, ch1.Flag, "10.0.0.1", baseTime)
	require.NoError(t, err)
	_, err = SubmitFlag(db, bob.ID, ch2.ID, ch2.Flag, "10.0.0.2", baseTime.Add(time.Minute))
	require.NoError(t, err)
	_, err = SubmitFlag(db, alice.ID, ch2.ID, ch2.Flag, "10.0.0.1", baseTime.Add(2*time.Minute))
	require.NoError(t, err)

	entries, err := ProjectLeaderboard(db)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, teamA.ID, entries[0].TeamID)
	assert.Equal(t, 400, entries[0].TotalScore)
	assert.Equal(t, 2, entries[0].SolveCount)
	assert.Equal(t, teamB.ID, entries[1].TeamID)
	assert.Equal(t, 300, entries[1].TotalScore)
	assert.Equal(t, teamC.ID, entries[2].TeamID)
	assert.Equal(t, 0, entries[2].TotalScore)
	assert.Nil(t, entries[2].LastSolveTime)
}

func TestProjectLeaderboardTieBreakByLastSolve(t *testing.T) {
	db := setupTestDB(t)
	alice, teamA := createSoloPlayer(t, db, "alice")
	bob, teamB := createSoloPlayer(t, db, "bob")

	ch := createTestChallenge(t, db, "tie", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 100})

	// bob 后到，同分时排在 alice 之后
	_, err := SubmitFlag(db, alice.ID, ch.ID, ch.Flag, "10.0.0.1", baseTime)
	require.NoError(t, err)
	_, err = SubmitFlag(db, bob.ID, ch.ID, ch.Flag, "10.0.0.2", baseTime.Add(time.Hour))
	require.NoError(t, err)

	entries, err := ProjectLeaderboard(db)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entries[0].TotalScore, entries[1].TotalScore)
	assert.Equal(t, teamA.ID, entries[0].TeamID)
	assert.Equal(t, teamB.ID, entries[1].TeamID)
}

func TestProjectLeaderboardTimelineCumulative(t *testing.T) {
	db := setupTestDB(t)
	alice, teamA := createSoloPlayer(t, db, "alice")

	require.NoError(t, db.Create(&models.Event{
		EventName: "RabbitCTF 2026",
		StartTime: baseTime.Add(-time.Hour),
		EndTime:   baseTime.Add(24 * time.Hour),
	}).Error)

	ch1 := createTestChallenge(t, db, "tl1", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 100})
	ch2 := createTestChallenge(t, db, "tl2", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 250})

	_, err := SubmitFlag(db, alice.ID, ch1.ID, ch1.Flag, "10.0.0.1", baseTime)
	require.NoError(t, err)
	_, err = SubmitFlag(db, alice.ID, ch2.ID, ch2.Flag, "10.0.0.1", baseTime.Add(30*time.Minute))
	require.NoError(t, err)

	entries, err := ProjectLeaderboard(db)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, teamA.ID, entries[0].TeamID)

	timeline := entries[0].Timeline
	require.Len(t, timeline, 3)
	// 曲线从赛事开始时刻的 0 分出发，逐点累加
	assert.Equal(t, baseTime.Add(-time.Hour), timeline[0].Time)
	assert.Equal(t, 0, timeline[0].Score)
	assert.Equal(t, 100, timeline[1].Score)
	assert.Equal(t, 350, timeline[2].Score)
	assert.True(t, timeline[1].Time.Before(timeline[2].Time))
}

func TestProjectLeaderboardTimelineNudge(t *testing.T) {
	db := setupTestDB(t)
	alice, _ := createSoloPlayer(t, db, "alice")

	ch1 := createTestChallenge(t, db, "same1", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 100})
	ch2 := createTestChallenge(t, db, "same2", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 200})

	// 两次解题时间戳完全相同（回灌数据的典型情况）
	_, err := SubmitFlag(db, alice.ID, ch1.ID, ch1.Flag, "10.0.0.1", baseTime)
	require.NoError(t, err)
	_, err = SubmitFlag(db, alice.ID, ch2.ID, ch2.Flag, "10.0.0.1", baseTime)
	require.NoError(t, err)

	entries, err := ProjectLeaderboard(db)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	timeline := entries[0].Timeline
	require.Len(t, timeline, 2)
	// 展示时间被向后挪固定步长，横轴保持严格递增
	assert.Equal(t, baseTime, timeline[0].Time)
	assert.Equal(t, baseTime.Add(TimelineNudge), timeline[1].Time)
	assert.Equal(t, 100, timeline[0].Score)
	assert.Equal(t, 300, timeline[1].Score)
}

func TestProjectLeaderboardScorelessTeamOrigin(t *testing.T) {
	db := setupTestDB(t)
	_, team := createSoloPlayer(t, db, "idle")

	start := baseTime.Add(-2 * time.Hour)
	require.NoError(t, db.Create(&models.Event{
		EventName: "RabbitCTF 2026",
		StartTime: start,
		EndTime:   baseTime.Add(24 * time.Hour),
	}).Error)

	entries, err := ProjectLeaderboard(db)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, team.ID, entries[0].TeamID)

	// 零分队伍也有曲线起点：赛事开始时刻的 0 分
	require.Len(t, entries[0].Timeline, 1)
	assert.Equal(t, start, entries[0].Timeline[0].Time)
	assert.Equal(t, 0, entries[0].Timeline[0].Score)
}

func TestProjectLeaderboardEmpty(t *testing.T) {
	db := setupTestDB(t)
	entries, err := ProjectLeaderboard(db)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetChallengeStats(t *testing.T) {
	db := setupTestDB(t)
	alice, teamA := createSoloPlayer(t, db, "alice")
	bob, _ := createSoloPlayer(t, db, "bob")
	ch := createTestChallenge(t, db, "stats", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 100})

	_, err := SubmitFlag(db, bob.ID, ch.ID, "RabbitCTF{wrong}", "10.0.0.2", baseTime)
	require.NoError(t, err)
	_, err = SubmitFlag(db, alice.ID, ch.ID, ch.Flag, "10.0.0.1", baseTime.Add(time.Minute))
	require.NoError(t, err)
	_, err = SubmitFlag(db, bob.ID, ch.ID, ch.Flag, "10.0.0.2", baseTime.Add(2*time.Minute))
	require.NoError(t, err)

	stats, err := GetChallengeStats(db, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Solves)
	assert.Equal(t, int64(3), stats.Attempts)
	assert.InDelta(t, 66.6, stats.SolveRate, 0.1)
	require.NotNil(t, stats.FirstBlood)
	assert.Equal(t, teamA.ID, stats.FirstBlood.TeamID)

	_, err = GetChallengeStats(db, 99999)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestGetTeamRank(t *testing.T) {
	db := setupTestDB(t)
	alice, teamA := createSoloPlayer(t, db, "alice")
	_, teamB := createSoloPlayer(t, db, "bob")
	ch := createTestChallenge(t, db, "rank", models.ScoreConfig{Mode: models.ScoringModeStatic, BaseScore: 100})

	_, err := SubmitFlag(db, alice.ID, ch.ID, ch.Flag, "10.0.0.1", baseTime)
	require.NoError(t, err)

	var a, b models.Team
	require.NoError(t, db.First(&a, teamA.ID).Error)
	require.NoError(t, db.First(&b, teamB.ID).Error)

	rank, err := GetTeamRank(db, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	rank, err = GetTeamRank(db, b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank)
}
