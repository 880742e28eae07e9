//go:generate mockery --name GamificationService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"

	"codeflux_backend/internal/middleware"
	"codeflux_backend/internal/model"
	"codeflux_backend/internal/repository"

	"gorm.io/gorm"
)

// GamificationService はカタログと進捗ストアを突き合わせ、
// 画面が必要とする集計 (完了率・XP・レベル・実績) を毎回導出します。
// 導出結果はどこにも保存しません。
type GamificationService interface {
	GetSummary(ctx context.Context) (*model.GamificationSummary, error)
	GetCourseProgressView(ctx context.Context, courseID string) (*model.CourseProgressResponse, error)
}

type gamificationService struct {
	db          *gorm.DB
	catalog     repository.CourseCatalog
	progressSvc ProgressService
}

func NewGamificationService(db *gorm.DB, catalog repository.CourseCatalog, progressSvc ProgressService) GamificationService {
	return &gamificationService{
		db:          db,
		catalog:     catalog,
		progressSvc: progressSvc,
	}
}

func (s *gamificationService) GetSummary(ctx context.Context) (*model.GamificationSummary, error) {
	logger := middleware.GetLogger(ctx)

	courses, err := s.catalog.ListCourses(ctx, s.db)
	if err != nil {
		// カタログが引けなくても集計画面は落とさない。チャプター数0として扱う
		logger.Warn("Course catalog unavailable, treating chapter counts as zero", "error", err)
		courses = []model.Course{}
	}

	store, err := s.progressSvc.GetAllProgress(ctx)
	if err != nil {
		store = model.ProgressStore{}
	}

	// カタログにあるコースのコース別集計
	summaries := make([]model.CourseSummary, 0, len(courses))
	coursesCompleted := 0
	for _, course := range courses {
		total := len(course.Chapters)
		completedCount := 0
		if cp, ok := store[course.ID]; ok {
			completedCount = len(cp.CompletedChapters)
		}
		completed := total > 0 && completedCount >= total
		if completed {
			coursesCompleted++
		}
		summaries = append(summaries, model.CourseSummary{
			CourseID:          course.ID,
			Title:             course.Title,
			TotalChapters:     total,
			CompletedChapters: completedCount,
			CompletionPercent: CalculateCourseProgress(completedCount, total),
			Completed:         completed,
		})
	}

	// レッスン数はカタログから消えたコースの進捗も数える (孤児レコードは残す方針)
	lessonsCompleted := 0
	for _, cp := range store {
		if cp != nil {
			lessonsCompleted += len(cp.CompletedChapters)
		}
	}

	totalXP := lessonsCompleted*model.XPLessonCompleted + coursesCompleted*model.XPCourseCompleted

	stats := model.UserStats{
		LessonsCompleted: lessonsCompleted,
		CoursesCompleted: coursesCompleted,
		CoursesCreated:   len(courses),
		Achievements:     []string{},
	}

	unlockedIDs := CheckAchievements(stats)
	achievements := make([]model.Achievement, 0, len(unlockedIDs))
	for _, id := range unlockedIDs {
		if a, ok := model.GetAchievementDetails(id); ok {
			achievements = append(achievements, a)
		}
	}

	return &model.GamificationSummary{
		TotalXP:      totalXP,
		Level:        CalculateLevel(totalXP),
		Courses:      summaries,
		Stats:        stats,
		Achievements: achievements,
	}, nil
}

func (s *gamificationService) GetCourseProgressView(ctx context.Context, courseID string) (*model.CourseProgressResponse, error) {
	logger := middleware.GetLogger(ctx).With("course_id", courseID)

	cp, err := s.progressSvc.GetCourseProgress(ctx, courseID)
	if err != nil {
		return nil, err
	}

	totalChapters := 0
	if course, err := s.catalog.GetCourse(ctx, s.db, courseID); err == nil {
		totalChapters = len(course.Chapters)
	} else {
		logger.Warn("Could not resolve course in catalog, chapter count unknown", "error", err)
	}

	return &model.CourseProgressResponse{
		CourseID:          cp.CourseID,
		CompletedChapters: cp.CompletedChapters,
		TotalChapters:     totalChapters,
		CompletionPercent: CalculateCompletionPercentage(totalChapters, cp.CompletedChapters),
		StartedDate:       cp.StartedDate,
		LastUpdated:       cp.LastUpdated,
	}, nil
}
