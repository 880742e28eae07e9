// internal/model/course.go
package model

// Course はカタログ側が所有するコース定義です。
// この領域は読み取り専用の外部コラボレータとして扱い、編集APIは持ちません。
type Course struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter はコース内の最小学習単位です。
// 生成元によってIDがJSONの数値だったり文字列だったりするため ChapterID で受ける。
type Chapter struct {
	ID    ChapterID `json:"id"`
	Title string    `json:"title"`
}

// CourseSummary はダッシュボード表示用のコース別集計DTO
type CourseSummary struct {
	CourseID          string `json:"course_id"`
	Title             string `json:"title"`
	TotalChapters     int    `json:"total_chapters"`
	CompletedChapters int    `json:"completed_chapters"`
	CompletionPercent int    `json:"completion_percent"`
	Completed         bool   `json:"completed"`
}
