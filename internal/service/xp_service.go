// internal/service/xp_service.go
//
// XP・レベル・実績の導出はすべて純粋関数です。入出力とも永続化せず、
// 呼び出しのたびに進捗カウントから再計算します (入力とズレようがない)。
package service

import (
	"math"
	"time"

	"codeflux_backend/internal/model"
)

// CalculateXP はアクションと補助情報から獲得XPを計算します。
// composeBonuses がtrueなら連続学習(×1.5)と難易度(×1.25)のボーナスを重ね掛けし、
// falseなら両方成立時に大きい方(×1.5)のみを適用します。
// 未知のアクションは基礎XP 0 として扱います。
func CalculateXP(action model.XPAction, meta model.XPMetadata, composeBonuses bool) int {
	xp := float64(model.XPActionTable[action])

	streakBonus := meta.Streak > 7
	difficultyBonus := meta.Difficulty == "hard"

	switch {
	case streakBonus && difficultyBonus && !composeBonuses:
		xp *= 1.5
	default:
		if streakBonus {
			xp *= 1.5
		}
		if difficultyBonus {
			xp *= 1.25
		}
	}

	// 学習セッションは基礎テーブルを使わず、分数ベースの専用ルールで上書きする
	if action == model.ActionStudySession && meta.Minutes > 0 {
		xp = float64(CalculateSessionXP(meta.Minutes))
	}

	return int(math.Round(xp))
}

// CalculateSessionXP は学習セッションのXPです。1分1ポイント + 累積の定額ボーナス。
// 120分なら 120 + 30 + 50 + 100 = 300 になる (ボーナスは排他ではなく加算)。
func CalculateSessionXP(minutes int) int {
	xp := minutes * model.XPStudySessionBase
	if minutes >= 30 {
		xp += model.XPStudy30MinBonus
	}
	if minutes >= 60 {
		xp += model.XPStudy60MinBonus
	}
	if minutes >= 120 {
		xp += model.XPStudy120MinBonus
	}
	return xp
}

// CalculateStreakBonus は連続学習日数の節目ボーナスです。高い閾値から排他的に判定。
func CalculateStreakBonus(streakDays int) int {
	switch {
	case streakDays >= 100:
		return 500
	case streakDays >= 30:
		return 250
	case streakDays >= 14:
		return 100
	case streakDays >= 7:
		return 50
	default:
		return 0
	}
}

// CalculateLevel は累計XPからレベル情報を導出します。
// minXP <= totalXP を満たす最大のレベルを選ぶ (境界は「以上」)。
// 最高レベル到達後の次レベルXPは 最高minXP + 1000 とする。
func CalculateLevel(totalXP int) model.LevelInfo {
	thresholds := model.LevelThresholds
	current := thresholds[0]
	currentIdx := 0
	for i := len(thresholds) - 1; i >= 0; i-- {
		if totalXP >= thresholds[i].MinXP {
			current = thresholds[i]
			currentIdx = i
			break
		}
	}

	nextLevelXP := thresholds[len(thresholds)-1].MinXP + 1000
	if currentIdx < len(thresholds)-1 {
		nextLevelXP = thresholds[currentIdx+1].MinXP
	}

	progress := float64(totalXP-current.MinXP) / float64(nextLevelXP-current.MinXP) * 100
	progress = math.Min(100, math.Max(0, progress))

	return model.LevelInfo{
		LevelThreshold:      current,
		NextLevelXP:         nextLevelXP,
		XPToNextLevel:       max(0, nextLevelXP-totalXP),
		ProgressToNextLevel: int(math.Round(progress)),
	}
}

// CheckAchievements は集計値を実績カタログの条件に当て、新しく解放された実績IDを返します。
// すでに解放済み (stats.Achievements) のIDは返しません。各条件は独立で順序依存なし。
func CheckAchievements(stats model.UserStats) []string {
	unlocked := make(map[string]bool, len(stats.Achievements))
	for _, id := range stats.Achievements {
		unlocked[id] = true
	}

	var result []string
	addIf := func(cond bool, id string) {
		if cond && !unlocked[id] {
			result = append(result, id)
		}
	}

	addIf(stats.LessonsCompleted >= 1, model.AchievementFirstStep)
	addIf(stats.StreakDays >= 7, model.AchievementStreakMaster)
	addIf(stats.PerfectQuizzes >= 1, model.AchievementQuizChampion)
	addIf(stats.CoursesCompleted >= 1, model.AchievementCourseConqueror)
	addIf(stats.TotalStudyTime >= 600, model.AchievementDedicatedLearner) // 10時間
	addIf(stats.CoursesCreated >= 5, model.AchievementContentCreator)

	return result
}

// CalculateCompletionPercentage はコースの完了率です。チャプター0件なら0 (ゼロ除算しない)。
func CalculateCompletionPercentage(totalChapters int, completedChapters []string) int {
	if totalChapters == 0 {
		return 0
	}
	return int(math.Round(float64(len(completedChapters)) / float64(totalChapters) * 100))
}

// CalculateCourseProgress は完了数/総数の百分率です
func CalculateCourseProgress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CalculateCompletionRate は CalculateCourseProgress と同じ比率計算です (集計画面用の別名)
func CalculateCompletionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CalculateQuizScore はクイズ得点の百分率です。timeBonus で10%上乗せ。
func CalculateQuizScore(correctAnswers, totalQuestions int, timeBonus bool) int {
	if totalQuestions == 0 {
		return 0
	}
	score := float64(correctAnswers) / float64(totalQuestions) * 100
	if timeBonus {
		score *= 1.1
	}
	return int(math.Round(score))
}

// CalculateAverageScore はスコア平均です。空なら0。
func CalculateAverageScore(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// IsStreakActive は最終学習日からストリークが継続しているか (当日または前日) を判定します
func IsStreakActive(lastActive time.Time) bool {
	days := int(math.Ceil(time.Since(lastActive).Hours() / 24))
	return days == 0 || days == 1
}
