// internal/model/xp.go
package model

// XPAction は経験値を付与する学習アクションの名前です
type XPAction string

const (
	ActionCourseEnrollment  XPAction = "course_enrollment"
	ActionChapterCompleted  XPAction = "chapter_completion"
	ActionQuizSubmission    XPAction = "quiz_submission"
	ActionQuizPerfectScore  XPAction = "quiz_perfect_score"
	ActionAchievementUnlock XPAction = "achievement_unlock"
	ActionFirstWeekStreak   XPAction = "first_week_streak"
	ActionCourseCompletion  XPAction = "course_completion"
	ActionDiscussionPost    XPAction = "discussion_post"
	ActionHelpfulAnswer     XPAction = "discussion_helpful_answer"
	ActionStudySession      XPAction = "study_session"
	ActionLessonCompleted   XPAction = "lesson_completed"
	ActionCourseCreated     XPAction = "course_created"
	ActionDailyLogin        XPAction = "daily_login"
)

// XPActionTable はアクションごとの基礎XPです。未知のアクションは 0 扱い。
var XPActionTable = map[XPAction]int{
	ActionCourseEnrollment:  50,
	ActionChapterCompleted:  100,
	ActionQuizSubmission:    75,
	ActionQuizPerfectScore:  150,
	ActionAchievementUnlock: 200,
	ActionFirstWeekStreak:   500,
	ActionCourseCompletion:  1000,
	ActionDiscussionPost:    25,
	ActionHelpfulAnswer:     50,
	ActionStudySession:      10, // 実際は分数ベースの別計算で上書きされる
	ActionLessonCompleted:   50,
	ActionCourseCreated:     200,
	ActionDailyLogin:        10,
}

// 固定XP報酬 (集計・ボーナス用)
const (
	XPLessonCompleted  = 50
	XPCourseCompleted  = 500
	XPStudySessionBase = 1 // 1分あたり
	XPStudy30MinBonus  = 30
	XPStudy60MinBonus  = 50
	XPStudy120MinBonus = 100
)

// XPMetadata はXP計算の補助情報です
type XPMetadata struct {
	Streak     int    `json:"streak,omitempty"`     // 連続学習日数 (>7 で1.5倍)
	Difficulty string `json:"difficulty,omitempty"` // "hard" で1.25倍
	Minutes    int    `json:"minutes,omitempty"`    // study_session の学習時間
}

// LevelThreshold はレベル到達に必要な累計XPの閾値です。
// level・minXP とも厳密に単調増加であること。
type LevelThreshold struct {
	Level int    `json:"level"`
	MinXP int    `json:"min_xp"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// LevelThresholds はレベルテーブル (昇順固定データ)
var LevelThresholds = []LevelThreshold{
	{Level: 1, MinXP: 0, Title: "Novice", Color: "gray"},
	{Level: 2, MinXP: 100, Title: "Learner", Color: "blue"},
	{Level: 3, MinXP: 300, Title: "Scholar", Color: "purple"},
	{Level: 4, MinXP: 600, Title: "Master", Color: "indigo"},
	{Level: 5, MinXP: 1200, Title: "Expert", Color: "red"},
	{Level: 6, MinXP: 2000, Title: "Sage", Color: "yellow"},
	{Level: 7, MinXP: 3000, Title: "Legend", Color: "pink"},
	{Level: 8, MinXP: 4500, Title: "Virtuoso", Color: "green"},
}

// LevelInfo は累計XPから導出されるレベル情報です (永続化しない)
type LevelInfo struct {
	LevelThreshold
	NextLevelXP         int `json:"next_level_xp"`
	XPToNextLevel       int `json:"xp_to_next_level"`
	ProgressToNextLevel int `json:"progress_to_next_level"` // 0-100
}

// UserStats は実績判定に使う集計値です。すべて進捗ストアとカタログから毎回計算します。
type UserStats struct {
	LessonsCompleted int      `json:"lessons_completed"`
	CoursesCompleted int      `json:"courses_completed"`
	CoursesCreated   int      `json:"courses_created"`
	StreakDays       int      `json:"streak_days"`
	TotalStudyTime   int      `json:"total_study_time"` // 分
	PerfectQuizzes   int      `json:"perfect_quizzes"`
	Achievements     []string `json:"achievements"` // 解放済み実績ID
}

// CalculateXPRequest はXP計算エンドポイントのリクエストDTO
type CalculateXPRequest struct {
	Action   string     `json:"action" validate:"required"`
	Metadata XPMetadata `json:"metadata"`
}

// CalculateXPResponse はXP計算結果のレスポンスDTO
type CalculateXPResponse struct {
	Action string `json:"action"`
	XP     int    `json:"xp"`
}

// GamificationSummary はゲーミフィケーション画面向けの集計レスポンスです
type GamificationSummary struct {
	TotalXP      int             `json:"total_xp"`
	Level        LevelInfo       `json:"level"`
	Courses      []CourseSummary `json:"courses"`
	Stats        UserStats       `json:"stats"`
	Achievements []Achievement   `json:"achievements"` // 今回までに解放された実績
}
