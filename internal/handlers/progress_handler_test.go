package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeflux_backend/internal/handlers"
	"codeflux_backend/internal/model"
	svc_mocks "codeflux_backend/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- テストヘルパー関数 ---
func newJsonRequest(t *testing.T, method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func contextWithChiURLParam(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) model.APIErrorResponse {
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// --- Test MarkChapterDone (URLパラメータ形) ---
func Test_ProgressHandler_MarkChapterDone(t *testing.T) {
	tests := []struct {
		name           string
		courseID       string
		chapterID      string
		setupMock      func(m *svc_mocks.ProgressService)
		wantStatusCode int
		wantErrorCode  string
	}{
		{
			name:      "正常系: 204を返す",
			courseID:  "course-1",
			chapterID: "3",
			setupMock: func(m *svc_mocks.ProgressService) {
				m.On("MarkChapterDone", mock.Anything, "course-1", "3").Return(nil).Once()
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name:      "異常系: 入力不正は400",
			courseID:  "course-1",
			chapterID: "",
			setupMock: func(m *svc_mocks.ProgressService) {
				m.On("MarkChapterDone", mock.Anything, "course-1", "").
					Return(model.NewAppError("INVALID_INPUT", "コースIDとチャプターIDは必須です。", "", model.ErrInvalidInput)).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrorCode:  "INVALID_INPUT",
		},
		{
			name:      "異常系: 保存失敗は507",
			courseID:  "course-1",
			chapterID: "3",
			setupMock: func(m *svc_mocks.ProgressService) {
				m.On("MarkChapterDone", mock.Anything, "course-1", "3").
					Return(model.NewAppError("PERSISTENCE_FAILED", "進捗を保存できませんでした。", "", model.ErrPersistenceFailed)).Once()
			},
			wantStatusCode: http.StatusInsufficientStorage,
			wantErrorCode:  "PERSISTENCE_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProgress := new(svc_mocks.ProgressService)
			tt.setupMock(mockProgress)
			h := handlers.NewProgressHandler(mockProgress, new(svc_mocks.GamificationService))

			req := httptest.NewRequest(http.MethodPut, "/api/v1/progress/"+tt.courseID+"/chapters/"+tt.chapterID, nil)
			req = contextWithChiURLParam(req, map[string]string{
				"course_id":  tt.courseID,
				"chapter_id": tt.chapterID,
			})
			rec := httptest.NewRecorder()

			h.MarkChapterDone(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantErrorCode != "" {
				resp := decodeErrorResponse(t, rec)
				assert.Equal(t, tt.wantErrorCode, resp.Error.Code)
			}
			mockProgress.AssertExpectations(t)
		})
	}
}

// --- Test MarkChapterDoneBody (JSONボディ形) ---
func Test_ProgressHandler_MarkChapterDoneBody(t *testing.T) {
	t.Run("正常系: 数値のチャプターIDも文字列に正規化して渡す", func(t *testing.T) {
		mockProgress := new(svc_mocks.ProgressService)
		mockProgress.On("MarkChapterDone", mock.Anything, "course-1", "3").Return(nil).Once()
		h := handlers.NewProgressHandler(mockProgress, new(svc_mocks.GamificationService))

		req := newJsonRequest(t, http.MethodPost, "/api/v1/progress/course-1/chapters",
			map[string]any{"chapter_id": 3})
		req = contextWithChiURLParam(req, map[string]string{"course_id": "course-1"})
		rec := httptest.NewRecorder()

		h.MarkChapterDoneBody(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockProgress.AssertExpectations(t)
	})

	t.Run("正常系: 文字列のチャプターIDも受け付ける", func(t *testing.T) {
		mockProgress := new(svc_mocks.ProgressService)
		mockProgress.On("MarkChapterDone", mock.Anything, "course-1", "intro").Return(nil).Once()
		h := handlers.NewProgressHandler(mockProgress, new(svc_mocks.GamificationService))

		req := newJsonRequest(t, http.MethodPost, "/api/v1/progress/course-1/chapters",
			map[string]any{"chapter_id": "intro"})
		req = contextWithChiURLParam(req, map[string]string{"course_id": "course-1"})
		rec := httptest.NewRecorder()

		h.MarkChapterDoneBody(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockProgress.AssertExpectations(t)
	})

	t.Run("異常系: 壊れたJSONは400", func(t *testing.T) {
		mockProgress := new(svc_mocks.ProgressService)
		h := handlers.NewProgressHandler(mockProgress, new(svc_mocks.GamificationService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/progress/course-1/chapters",
			bytes.NewBufferString("{broken"))
		req.Header.Set("Content-Type", "application/json")
		req = contextWithChiURLParam(req, map[string]string{"course_id": "course-1"})
		rec := httptest.NewRecorder()

		h.MarkChapterDoneBody(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_BODY", decodeErrorResponse(t, rec).Error.Code)
		mockProgress.AssertNotCalled(t, "MarkChapterDone", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: chapter_id未指定はバリデーションエラー", func(t *testing.T) {
		mockProgress := new(svc_mocks.ProgressService)
		h := handlers.NewProgressHandler(mockProgress, new(svc_mocks.GamificationService))

		req := newJsonRequest(t, http.MethodPost, "/api/v1/progress/course-1/chapters", map[string]any{})
		req = contextWithChiURLParam(req, map[string]string{"course_id": "course-1"})
		rec := httptest.NewRecorder()

		h.MarkChapterDoneBody(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeErrorResponse(t, rec).Error.Code)
	})
}

// --- Test UnmarkChapterDone ---
func Test_ProgressHandler_UnmarkChapterDone(t *testing.T) {
	t.Run("正常系: 対象が無くても204", func(t *testing.T) {
		mockProgress := new(svc_mocks.ProgressService)
		mockProgress.On("UnmarkChapterDone", mock.Anything, "course-1", "9").Return(nil).Once()
		h := handlers.NewProgressHandler(mockProgress, new(svc_mocks.GamificationService))

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/progress/course-1/chapters/9", nil)
		req = contextWithChiURLParam(req, map[string]string{"course_id": "course-1", "chapter_id": "9"})
		rec := httptest.NewRecorder()

		h.UnmarkChapterDone(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockProgress.AssertExpectations(t)
	})
}

// --- Test GetCourseProgress ---
func Test_ProgressHandler_GetCourseProgress(t *testing.T) {
	t.Run("正常系: 進捗ビューをJSONで返す", func(t *testing.T) {
		mockGamification := new(svc_mocks.GamificationService)
		started := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
		mockGamification.On("GetCourseProgressView", mock.Anything, "course-1").Return(&model.CourseProgressResponse{
			CourseID:          "course-1",
			CompletedChapters: []string{"1", "2"},
			TotalChapters:     3,
			CompletionPercent: 67,
			StartedDate:       &started,
		}, nil).Once()
		h := handlers.NewProgressHandler(new(svc_mocks.ProgressService), mockGamification)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/course-1", nil)
		req = contextWithChiURLParam(req, map[string]string{"course_id": "course-1"})
		rec := httptest.NewRecorder()

		h.GetCourseProgress(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp model.CourseProgressResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "course-1", resp.CourseID)
		assert.Equal(t, []string{"1", "2"}, resp.CompletedChapters)
		assert.Equal(t, 67, resp.CompletionPercent)
		assert.Nil(t, resp.LastUpdated)
	})
}

// --- Test GetAllProgress ---
func Test_ProgressHandler_GetAllProgress(t *testing.T) {
	t.Run("正常系: 全コース進捗をJSONで返す", func(t *testing.T) {
		mockProgress := new(svc_mocks.ProgressService)
		mockProgress.On("GetAllProgress", mock.Anything).Return(model.ProgressStore{
			"course-1": {CourseID: "course-1", CompletedChapters: []string{"1"}},
		}, nil).Once()
		h := handlers.NewProgressHandler(mockProgress, new(svc_mocks.GamificationService))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
		rec := httptest.NewRecorder()

		h.GetAllProgress(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]model.CourseProgress
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Contains(t, resp, "course-1")
		assert.Equal(t, []string{"1"}, resp["course-1"].CompletedChapters)
	})

	t.Run("正常系: 進捗ゼロなら空オブジェクト", func(t *testing.T) {
		mockProgress := new(svc_mocks.ProgressService)
		mockProgress.On("GetAllProgress", mock.Anything).Return(model.ProgressStore{}, nil).Once()
		h := handlers.NewProgressHandler(mockProgress, new(svc_mocks.GamificationService))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
		rec := httptest.NewRecorder()

		h.GetAllProgress(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})
}
