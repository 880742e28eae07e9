package service

import (
	"testing"
	"time"

	"codeflux_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func Test_CalculateSessionXP(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{name: "ボーナスなし (10分)", minutes: 10, want: 10},
		{name: "30分ボーナス (45分)", minutes: 45, want: 75},
		{name: "30分+60分ボーナス (90分)", minutes: 90, want: 170},
		{name: "全ボーナス加算 (120分)", minutes: 120, want: 300},
		{name: "境界値: ちょうど30分", minutes: 30, want: 60},
		{name: "境界値: ちょうど60分", minutes: 60, want: 140},
		{name: "0分", minutes: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateSessionXP(tt.minutes))
		})
	}
}

func Test_CalculateStreakBonus(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{name: "7日未満は0", days: 6, want: 0},
		{name: "境界値: 7日", days: 7, want: 50},
		{name: "境界値: 14日", days: 14, want: 100},
		{name: "境界値: 30日", days: 30, want: 250},
		{name: "30日以上100日未満", days: 99, want: 250},
		{name: "境界値: 100日", days: 100, want: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreakBonus(tt.days))
		})
	}
}

func Test_CalculateXP(t *testing.T) {
	tests := []struct {
		name    string
		action  model.XPAction
		meta    model.XPMetadata
		compose bool
		want    int
	}{
		{
			name:   "基礎XPのみ (チャプター完了)",
			action: model.ActionChapterCompleted,
			want:   100,
		},
		{
			name:   "連続学習ボーナス (streak > 7)",
			action: model.ActionChapterCompleted,
			meta:   model.XPMetadata{Streak: 8},
			want:   150,
		},
		{
			name:   "境界値: streak = 7 はボーナスなし",
			action: model.ActionChapterCompleted,
			meta:   model.XPMetadata{Streak: 7},
			want:   100,
		},
		{
			name:   "難易度ボーナス (hard)",
			action: model.ActionChapterCompleted,
			meta:   model.XPMetadata{Difficulty: "hard"},
			want:   125,
		},
		{
			name:    "重ね掛けあり: 100 × 1.5 × 1.25",
			action:  model.ActionChapterCompleted,
			meta:    model.XPMetadata{Streak: 10, Difficulty: "hard"},
			compose: true,
			want:    188, // 187.5 を四捨五入
		},
		{
			name:   "重ね掛けなし: 大きい方(×1.5)のみ",
			action: model.ActionChapterCompleted,
			meta:   model.XPMetadata{Streak: 10, Difficulty: "hard"},
			want:   150,
		},
		{
			name:   "学習セッションは分数ベースの計算で上書き",
			action: model.ActionStudySession,
			meta:   model.XPMetadata{Minutes: 45},
			want:   75,
		},
		{
			name:    "学習セッションはボーナス倍率の影響を受けない",
			action:  model.ActionStudySession,
			meta:    model.XPMetadata{Minutes: 45, Streak: 10, Difficulty: "hard"},
			compose: true,
			want:    75,
		},
		{
			name:   "未知のアクションは0",
			action: model.XPAction("unknown_action"),
			meta:   model.XPMetadata{Streak: 10},
			want:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateXP(tt.action, tt.meta, tt.compose))
		})
	}
}

func Test_CalculateLevel(t *testing.T) {
	tests := []struct {
		name          string
		totalXP       int
		wantLevel     int
		wantTitle     string
		wantNextXP    int
		wantXPToNext  int
	}{
		{name: "XP0はレベル1 (Novice)", totalXP: 0, wantLevel: 1, wantTitle: "Novice", wantNextXP: 100, wantXPToNext: 100},
		{name: "境界値はそのレベルに含まれる (300でScholar)", totalXP: 300, wantLevel: 3, wantTitle: "Scholar", wantNextXP: 600, wantXPToNext: 300},
		{name: "境界値の1つ手前 (299はLearner)", totalXP: 299, wantLevel: 2, wantTitle: "Learner", wantNextXP: 300, wantXPToNext: 1},
		{name: "最高レベル超過は topMinXP+1000 が次の目標", totalXP: 99999, wantLevel: 8, wantTitle: "Virtuoso", wantNextXP: 5500, wantXPToNext: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevel(tt.totalXP)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantNextXP, got.NextLevelXP)
			assert.Equal(t, tt.wantXPToNext, got.XPToNextLevel)
		})
	}

	t.Run("進捗率は0-100に収まる", func(t *testing.T) {
		got := CalculateLevel(99999)
		assert.Equal(t, 100, got.ProgressToNextLevel)

		got = CalculateLevel(0)
		assert.Equal(t, 0, got.ProgressToNextLevel)
	})

	t.Run("レベルテーブルは厳密に単調増加", func(t *testing.T) {
		for i := 1; i < len(model.LevelThresholds); i++ {
			assert.Greater(t, model.LevelThresholds[i].Level, model.LevelThresholds[i-1].Level)
			assert.Greater(t, model.LevelThresholds[i].MinXP, model.LevelThresholds[i-1].MinXP)
		}
	})
}

func Test_CheckAchievements(t *testing.T) {
	t.Run("初レッスンで first_step が解放される", func(t *testing.T) {
		got := CheckAchievements(model.UserStats{LessonsCompleted: 1})
		assert.Equal(t, []string{model.AchievementFirstStep}, got)
	})

	t.Run("単調性: 解放済みリストに入れると再度返らない", func(t *testing.T) {
		stats := model.UserStats{
			LessonsCompleted: 1,
			Achievements:     []string{model.AchievementFirstStep},
		}
		got := CheckAchievements(stats)
		assert.Empty(t, got)
	})

	t.Run("複数条件は独立に判定される", func(t *testing.T) {
		stats := model.UserStats{
			LessonsCompleted: 3,
			CoursesCompleted: 1,
			CoursesCreated:   5,
			StreakDays:       7,
			TotalStudyTime:   600,
			PerfectQuizzes:   1,
		}
		got := CheckAchievements(stats)
		assert.ElementsMatch(t, []string{
			model.AchievementFirstStep,
			model.AchievementStreakMaster,
			model.AchievementQuizChampion,
			model.AchievementCourseConqueror,
			model.AchievementDedicatedLearner,
			model.AchievementContentCreator,
		}, got)
	})

	t.Run("閾値未満は解放されない", func(t *testing.T) {
		stats := model.UserStats{
			StreakDays:     6,
			TotalStudyTime: 599,
			CoursesCreated: 4,
		}
		assert.Empty(t, CheckAchievements(stats))
	})
}

func Test_PercentageHelpers(t *testing.T) {
	t.Run("チャプター0件はゼロ除算せず0", func(t *testing.T) {
		assert.Equal(t, 0, CalculateCompletionPercentage(0, []string{}))
	})
	t.Run("4章中2章完了で50", func(t *testing.T) {
		assert.Equal(t, 50, CalculateCompletionPercentage(4, []string{"1", "2"}))
	})
	t.Run("四捨五入 (3章中1章 = 33)", func(t *testing.T) {
		assert.Equal(t, 33, CalculateCompletionPercentage(3, []string{"1"}))
	})
	t.Run("CalculateCourseProgress: 母数0で0", func(t *testing.T) {
		assert.Equal(t, 0, CalculateCourseProgress(5, 0))
	})
	t.Run("CalculateCompletionRate: 10中7で70", func(t *testing.T) {
		assert.Equal(t, 70, CalculateCompletionRate(7, 10))
	})
	t.Run("CalculateQuizScore: 問題0件で0", func(t *testing.T) {
		assert.Equal(t, 0, CalculateQuizScore(0, 0, false))
	})
	t.Run("CalculateQuizScore: タイムボーナスで1割増", func(t *testing.T) {
		assert.Equal(t, 110, CalculateQuizScore(10, 10, true))
		assert.Equal(t, 100, CalculateQuizScore(10, 10, false))
	})
	t.Run("CalculateAverageScore: 空なら0", func(t *testing.T) {
		assert.Equal(t, 0, CalculateAverageScore(nil))
	})
	t.Run("CalculateAverageScore: 平均の四捨五入", func(t *testing.T) {
		assert.Equal(t, 67, CalculateAverageScore([]int{100, 50, 50}))
	})
}

func Test_IsStreakActive(t *testing.T) {
	assert.True(t, IsStreakActive(time.Now()))
	assert.True(t, IsStreakActive(time.Now().Add(-20*time.Hour)))
	assert.False(t, IsStreakActive(time.Now().Add(-72*time.Hour)))
}

func Test_GetAchievementDetails(t *testing.T) {
	t.Run("小文字IDでも大文字化して引ける", func(t *testing.T) {
		a, ok := model.GetAchievementDetails("first_step")
		assert.True(t, ok)
		assert.Equal(t, "First Step", a.Name)
	})
	t.Run("未知のIDはok=false", func(t *testing.T) {
		_, ok := model.GetAchievementDetails("no_such_achievement")
		assert.False(t, ok)
	})
}
