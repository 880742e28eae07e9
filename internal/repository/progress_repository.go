//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"codeflux_backend/internal/config"
	"codeflux_backend/internal/middleware"
	"codeflux_backend/internal/model"

	"gorm.io/gorm"
)

// ProgressRepository はアイデンティティ1件分の進捗ストアを丸ごと読み書きします。
// ストレージ上は userProgress_<identityToken> キーのJSONオブジェクト1件です。
type ProgressRepository interface {
	LoadStore(ctx context.Context, db *gorm.DB, identityToken string) (model.ProgressStore, error)
	SaveStore(ctx context.Context, db *gorm.DB, identityToken string, store model.ProgressStore) error
}

type kvProgressRepository struct {
	kv KVRepository
}

func NewKVProgressRepository(kv KVRepository) ProgressRepository {
	return &kvProgressRepository{kv: kv}
}

// ProgressStorageKey はアイデンティティトークンから保存キーを導出します
func ProgressStorageKey(identityToken string) string {
	return config.ProgressKeyPrefix + identityToken
}

func (r *kvProgressRepository) LoadStore(ctx context.Context, db *gorm.DB, identityToken string) (model.ProgressStore, error) {
	logger := middleware.GetLogger(ctx)

	raw, err := r.kv.Get(ctx, db, ProgressStorageKey(identityToken))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 最初のミューテーションまでレコードは存在しない。空ストアを合成する
			return model.ProgressStore{}, nil
		}
		return nil, fmt.Errorf("kvProgressRepository.LoadStore: %w", err)
	}

	var store model.ProgressStore
	if err := json.Unmarshal([]byte(raw), &store); err != nil {
		// 壊れたレコードは空ストア扱い (読み取りは決して落とさない)
		logger.Warn("Corrupt progress store record, treating as empty", "error", err, "identity", identityToken)
		return model.ProgressStore{}, nil
	}

	// 欠損フィールドの防御。completedChaptersがnullでも空集合として扱う
	for courseID, cp := range store {
		if cp == nil {
			store[courseID] = model.NewCourseProgress(courseID)
			continue
		}
		if cp.CompletedChapters == nil {
			cp.CompletedChapters = []string{}
		}
		if cp.CourseID == "" {
			cp.CourseID = courseID
		}
	}
	return store, nil
}

func (r *kvProgressRepository) SaveStore(ctx context.Context, db *gorm.DB, identityToken string, store model.ProgressStore) error {
	raw, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("kvProgressRepository.SaveStore: %w", err)
	}
	if err := r.kv.Set(ctx, db, ProgressStorageKey(identityToken), string(raw)); err != nil {
		return fmt.Errorf("kvProgressRepository.SaveStore: %w", err)
	}
	return nil
}
