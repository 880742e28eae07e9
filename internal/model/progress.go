// internal/model/progress.go
package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// CourseProgress はコース単位の学習進捗を表します。
// 永続化されるのはこのレコードのみで、XPやレベルは毎回ここから導出します。
type CourseProgress struct {
	CourseID          string     `json:"courseId"`
	CompletedChapters []string   `json:"completedChapters"` // 正規化済みチャプターIDの集合 (重複禁止)
	StartedDate       *time.Time `json:"startedDate"`       // 最初のチャプター完了時に一度だけ設定
	LastUpdated       *time.Time `json:"lastUpdated"`       // 集合が変化するたびに更新
}

// NewCourseProgress は空の進捗レコードを返します。
// レコード未存在は「完了チャプターなし」と等価なので、読み取り側はこれを合成します。
func NewCourseProgress(courseID string) *CourseProgress {
	return &CourseProgress{
		CourseID:          courseID,
		CompletedChapters: []string{},
	}
}

// ProgressStore はアイデンティティ1件分の全コース進捗 (courseId -> CourseProgress) です。
// KVストアには userProgress_<identityToken> キー配下に丸ごとJSONで保存されます。
type ProgressStore map[string]*CourseProgress

// ChapterKey はチャプター識別子を正規化した文字列表現に変換します。
// URLパラメータの "3"、JSONの数値 3、どちらも同じキーに落ちること。
func ChapterKey(id any) string {
	switch v := id.(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		// JSONの数値はfloat64でデコードされる。整数値なら小数点なしで表現する
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// ChapterID は数値・文字列のどちらでも受け取れるチャプター識別子です (リクエストDTO用)
type ChapterID string

func (c *ChapterID) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	key := ChapterKey(raw)
	if key == "" {
		return ErrInvalidInput
	}
	*c = ChapterID(key)
	return nil
}

func (c ChapterID) String() string {
	return string(c)
}

// ProgressEvent は進捗変更の通知ペイロードです。
// ブロードキャスト時点で購読している相手にのみ届きます (配信保証なし)。
type ProgressEvent struct {
	CourseID          string   `json:"courseId"`
	ChapterID         string   `json:"chapterId"`
	CompletedChapters []string `json:"completedChapters"`
}

// CourseProgressResponse はコース進捗のレスポンスDTO (完了率は毎回導出)
type CourseProgressResponse struct {
	CourseID          string     `json:"course_id"`
	CompletedChapters []string   `json:"completed_chapters"`
	TotalChapters     int        `json:"total_chapters"`
	CompletionPercent int        `json:"completion_percent"`
	StartedDate       *time.Time `json:"started_date"`
	LastUpdated       *time.Time `json:"last_updated"`
}

// MarkChapterRequest はチャプター完了マークのリクエストDTO
type MarkChapterRequest struct {
	ChapterID ChapterID `json:"chapter_id" validate:"required"`
}
