//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"sync"
	"time"

	"codeflux_backend/internal/events"
	"codeflux_backend/internal/middleware"
	"codeflux_backend/internal/model"
	"codeflux_backend/internal/repository"

	"gorm.io/gorm"
)

// ProgressService は完了状態の読み書きに対する唯一の窓口です。
// アイデンティティ解決と保存キーの導出は呼び出し元から隠蔽します。
type ProgressService interface {
	MarkChapterDone(ctx context.Context, courseID string, chapterID any) error
	UnmarkChapterDone(ctx context.Context, courseID string, chapterID any) error
	GetCourseProgress(ctx context.Context, courseID string) (*model.CourseProgress, error)
	GetAllProgress(ctx context.Context) (model.ProgressStore, error)
}

type progressService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
	resolver IdentityResolver
	broker   *events.Broker

	// ストア全体のread-modify-writeを直列化する。
	// 元の実行モデルではシングルスレッドが同じ保証を暗黙に与えていた
	mu sync.Mutex
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository, resolver IdentityResolver, broker *events.Broker) ProgressService {
	return &progressService{
		db:       db,
		progRepo: progRepo,
		resolver: resolver,
		broker:   broker,
	}
}

// IsChapterCompleted は正規化した文字列表現でメンバーシップを判定します。純粋関数。
func IsChapterCompleted(completedChapters []string, chapterID any) bool {
	key := model.ChapterKey(chapterID)
	if key == "" {
		return false
	}
	for _, c := range completedChapters {
		if model.ChapterKey(c) == key {
			return true
		}
	}
	return false
}

func (s *progressService) MarkChapterDone(ctx context.Context, courseID string, chapterID any) error {
	logger := middleware.GetLogger(ctx).With("course_id", courseID)

	key := model.ChapterKey(chapterID)
	if courseID == "" || key == "" {
		return model.NewAppError("INVALID_INPUT", "コースIDとチャプターIDは必須です。", "", model.ErrInvalidInput)
	}
	logger = logger.With("chapter_id", key)

	// アイデンティティ解決は決して失敗しない (ゲストフォールバック)
	token := s.resolver.ResolveIdentity(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.progRepo.LoadStore(ctx, s.db, token)
	if err != nil {
		// 読めない状態で書くと既存の進捗を空ストアで潰しかねないため、ここで止める
		logger.Error("Failed to load progress store before mark", "error", err)
		return model.NewAppError("PERSISTENCE_FAILED", "進捗の保存に失敗しました。", "", model.ErrPersistenceFailed)
	}

	cp, ok := store[courseID]
	if !ok {
		now := time.Now().UTC()
		cp = model.NewCourseProgress(courseID)
		cp.StartedDate = &now // 最初の完了時に一度だけ設定し、以後更新しない
		store[courseID] = cp
	}

	if IsChapterCompleted(cp.CompletedChapters, key) {
		// 冪等: 2回目以降は保存もlastUpdated更新も通知も行わない
		logger.Info("Chapter already marked as done, no-op")
		return nil
	}

	now := time.Now().UTC()
	cp.CompletedChapters = append(cp.CompletedChapters, key)
	cp.LastUpdated = &now

	if err := s.progRepo.SaveStore(ctx, s.db, token, store); err != nil {
		logger.Error("Failed to persist progress store", "error", err)
		return model.NewAppError("PERSISTENCE_FAILED", "進捗の保存に失敗しました。", "", model.ErrPersistenceFailed)
	}

	logger.Info("Chapter marked as done", "total_completed", len(cp.CompletedChapters))
	s.broker.Publish(model.ProgressEvent{
		CourseID:          courseID,
		ChapterID:         key,
		CompletedChapters: append([]string(nil), cp.CompletedChapters...),
	})
	return nil
}

func (s *progressService) UnmarkChapterDone(ctx context.Context, courseID string, chapterID any) error {
	logger := middleware.GetLogger(ctx).With("course_id", courseID)

	key := model.ChapterKey(chapterID)
	if courseID == "" || key == "" {
		return model.NewAppError("INVALID_INPUT", "コースIDとチャプターIDは必須です。", "", model.ErrInvalidInput)
	}
	logger = logger.With("chapter_id", key)

	token := s.resolver.ResolveIdentity(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.progRepo.LoadStore(ctx, s.db, token)
	if err != nil {
		logger.Error("Failed to load progress store before unmark", "error", err)
		return model.NewAppError("PERSISTENCE_FAILED", "進捗の保存に失敗しました。", "", model.ErrPersistenceFailed)
	}

	cp, ok := store[courseID]
	if !ok || !IsChapterCompleted(cp.CompletedChapters, key) {
		// レコードもエントリも無ければ何もしない (成功扱い)
		logger.Info("Nothing to unmark, no-op")
		return nil
	}

	remaining := make([]string, 0, len(cp.CompletedChapters))
	for _, c := range cp.CompletedChapters {
		if model.ChapterKey(c) != key {
			remaining = append(remaining, c)
		}
	}
	now := time.Now().UTC()
	cp.CompletedChapters = remaining
	cp.LastUpdated = &now

	if err := s.progRepo.SaveStore(ctx, s.db, token, store); err != nil {
		logger.Error("Failed to persist progress store", "error", err)
		return model.NewAppError("PERSISTENCE_FAILED", "進捗の保存に失敗しました。", "", model.ErrPersistenceFailed)
	}

	logger.Info("Chapter unmarked", "total_completed", len(cp.CompletedChapters))
	s.broker.Publish(model.ProgressEvent{
		CourseID:          courseID,
		ChapterID:         key,
		CompletedChapters: append([]string(nil), cp.CompletedChapters...),
	})
	return nil
}

func (s *progressService) GetCourseProgress(ctx context.Context, courseID string) (*model.CourseProgress, error) {
	logger := middleware.GetLogger(ctx).With("course_id", courseID)

	token := s.resolver.ResolveIdentity(ctx)

	store, err := s.progRepo.LoadStore(ctx, s.db, token)
	if err != nil {
		// 読み取り経路はエラーを伝播させず、安全なデフォルトを返す
		logger.Warn("Failed to load progress store, returning empty progress", "error", err)
		return model.NewCourseProgress(courseID), nil
	}

	cp, ok := store[courseID]
	if !ok {
		return model.NewCourseProgress(courseID), nil
	}

	// 保存形式が揺れていても読み出しは常に正規化済みで返す
	normalized := make([]string, 0, len(cp.CompletedChapters))
	for _, c := range cp.CompletedChapters {
		normalized = append(normalized, model.ChapterKey(c))
	}
	return &model.CourseProgress{
		CourseID:          courseID,
		CompletedChapters: normalized,
		StartedDate:       cp.StartedDate,
		LastUpdated:       cp.LastUpdated,
	}, nil
}

func (s *progressService) GetAllProgress(ctx context.Context) (model.ProgressStore, error) {
	logger := middleware.GetLogger(ctx)

	token := s.resolver.ResolveIdentity(ctx)

	store, err := s.progRepo.LoadStore(ctx, s.db, token)
	if err != nil {
		logger.Warn("Failed to load progress store, returning empty store", "error", err)
		return model.ProgressStore{}, nil
	}
	return store, nil
}
