//go:generate mockery --name KVRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"codeflux_backend/internal/middleware"
	"codeflux_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository は永続キーバリューストアの get/set 契約です。
// リモートバックエンドへの差し替えはこのインターフェースの実装追加だけで済むようにする。
type KVRepository interface {
	Get(ctx context.Context, db *gorm.DB, key string) (string, error)
	Set(ctx context.Context, db *gorm.DB, key string, value string) error
}

type gormKVRepository struct{}

func NewGormKVRepository() KVRepository {
	return &gormKVRepository{}
}

func (r *gormKVRepository) Get(ctx context.Context, db *gorm.DB, key string) (string, error) {
	var entry model.KVEntry
	result := db.WithContext(ctx).Where("key = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", model.ErrNotFound
		}
		logger := middleware.GetLogger(ctx)
		logger.Error("Error reading kv entry from DB", "error", result.Error, "key", key)
		return "", fmt.Errorf("gormKVRepository.Get: %w", result.Error)
	}
	return string(entry.Value), nil
}

func (r *gormKVRepository) Set(ctx context.Context, db *gorm.DB, key string, value string) error {
	entry := model.KVEntry{
		Key:   key,
		Value: datatypes.JSON(value),
	}
	// キーごとに1レコード。既存キーは丸ごと上書き (read-modify-writeは呼び出し側の責務)
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if result.Error != nil {
		logger := middleware.GetLogger(ctx)
		logger.Error("Error writing kv entry to DB", "error", result.Error, "key", key)
		return fmt.Errorf("gormKVRepository.Set: %w", result.Error)
	}
	return nil
}
