// internal/model/achievement.go
package model

import "strings"

// Achievement は一度きり解放できる実績の静的カタログエントリです
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
}

// 実績ID
const (
	AchievementFirstStep        = "first_step"
	AchievementStreakMaster     = "streak_master"
	AchievementQuizChampion     = "quiz_champion"
	AchievementCourseConqueror  = "course_conqueror"
	AchievementDedicatedLearner = "dedicated_learner"
	AchievementContentCreator   = "content_creator"
)

// Achievements は実績カタログ (大文字IDキーの固定データ)
var Achievements = map[string]Achievement{
	"FIRST_STEP":        {ID: AchievementFirstStep, Name: "First Step", Emoji: "👣", Description: "Complete your first lesson", XPReward: 25},
	"STREAK_MASTER":     {ID: AchievementStreakMaster, Name: "Streak Master", Emoji: "🔥", Description: "Maintain a 7-day streak", XPReward: 100},
	"QUIZ_CHAMPION":     {ID: AchievementQuizChampion, Name: "Quiz Champion", Emoji: "🏆", Description: "Score 100% on a quiz", XPReward: 150},
	"COURSE_CONQUEROR":  {ID: AchievementCourseConqueror, Name: "Course Conqueror", Emoji: "👑", Description: "Complete your first full course", XPReward: 200},
	"DEDICATED_LEARNER": {ID: AchievementDedicatedLearner, Name: "Dedicated Learner", Emoji: "📚", Description: "Study 10 hours in a week", XPReward: 250},
	"CONTENT_CREATOR":   {ID: AchievementContentCreator, Name: "Content Creator", Emoji: "✨", Description: "Create 5 courses", XPReward: 500},
}

// GetAchievementDetails は実績IDから詳細を引きます (大文字化して逆引き)。
// 未知のIDは ok=false。
func GetAchievementDetails(achievementID string) (Achievement, bool) {
	a, ok := Achievements[strings.ToUpper(achievementID)]
	return a, ok
}

// GetAllAchievements はカタログ全件を返します (順序は定義順)
func GetAllAchievements() []Achievement {
	return []Achievement{
		Achievements["FIRST_STEP"],
		Achievements["STREAK_MASTER"],
		Achievements["QUIZ_CHAMPION"],
		Achievements["COURSE_CONQUEROR"],
		Achievements["DEDICATED_LEARNER"],
		Achievements["CONTENT_CREATOR"],
	}
}
