//go:generate mockery --name CourseCatalog --output ./mocks --outpkg mocks --case=underscore
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

// CourseCatalog はコースカタログへの読み取り専用アクセスです。
// カタログ自体はコース生成側が所有する外部コラボレータで、この層は内容に責任を持たない。
type CourseCatalog interface {
	ListCourses(ctx context.Context, db *gorm.DB) ([]model.Course, error)
	GetCourse(ctx context.Context, db *gorm.DB, courseID string) (*model.Course, error)
}

type kvCourseCatalog struct {
	kv KVRepository
}

func NewKVCourseCatalog(kv KVRepository) CourseCatalog {
	return &kvCourseCatalog{kv: kv}
}

// ListCourses は generatedCourses を優先し、空なら codeflux_courses に
// フォールバックして読み込みます (SPA時代のキー配置をそのまま踏襲)。
func (r *kvCourseCatalog) ListCourses(ctx context.Context, db *gorm.DB) ([]model.Course, error) {
	logger := middleware.GetLogger(ctx)

	for _, key := range []string{config.GeneratedCoursesKey, config.CoursesKey} {
		raw, err := r.kv.Get(ctx, db, key)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("kvCourseCatalog.ListCourses: %w", err)
		}
		var courses []model.Course
		if err := json.Unmarshal([]byte(raw), &courses); err != nil {
			logger.Warn("Corrupt course catalog record, skipping key", "error", err, "key", key)
			continue
		}
		if len(courses) > 0 {
			return courses, nil
		}
	}
	return []model.Course{}, nil
}

func (r *kvCourseCatalog) GetCourse(ctx context.Context, db *gorm.DB, courseID string) (*model.Course, error) {
	courses, err := r.ListCourses(ctx, db)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].ID == courseID {
			return &courses[i], nil
		}
	}
	return nil, model.ErrNotFound
}
