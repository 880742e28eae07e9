// internal/handlers/progress_handler.go
package handlers

import (
	"net/http"

	"codeflux_backend/internal/middleware"
	"codeflux_backend/internal/model"
	"codeflux_backend/internal/service"
	"codeflux_backend/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ProgressHandler struct {
	progressSvc     service.ProgressService
	gamificationSvc service.GamificationService
}

func NewProgressHandler(progressSvc service.ProgressService, gamificationSvc service.GamificationService) *ProgressHandler {
	return &ProgressHandler{
		progressSvc:     progressSvc,
		gamificationSvc: gamificationSvc,
	}
}

// MarkChapterDone はチャプターを完了済みにします。冪等。
// PUT /api/v1/progress/{course_id}/chapters/{chapter_id}
func (h *ProgressHandler) MarkChapterDone(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID := chi.URLParam(r, "course_id")
	chapterID := chi.URLParam(r, "chapter_id")

	if err := h.progressSvc.MarkChapterDone(r.Context(), courseID, chapterID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnmarkChapterDone は完了マークを外します。対象が無ければ何もせず成功します。
// DELETE /api/v1/progress/{course_id}/chapters/{chapter_id}
func (h *ProgressHandler) UnmarkChapterDone(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID := chi.URLParam(r, "course_id")
	chapterID := chi.URLParam(r, "chapter_id")

	if err := h.progressSvc.UnmarkChapterDone(r.Context(), courseID, chapterID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkChapterDoneBody はボディでチャプターIDを受け取る別形です。
// SPAはJSONの数値でも文字列でもIDを送ってくるため、DTO側で正規化します。
// POST /api/v1/progress/{course_id}/chapters
func (h *ProgressHandler) MarkChapterDoneBody(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID := chi.URLParam(r, "course_id")

	var req model.MarkChapterRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_BODY", "リクエストボディが不正です。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.progressSvc.MarkChapterDone(r.Context(), courseID, req.ChapterID.String()); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCourseProgress はコース1件の進捗を返します。レコードが無くても404にはせず、
// 空の進捗 (完了0件・タイムスタンプnull) を返します。
// GET /api/v1/progress/{course_id}
func (h *ProgressHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID := chi.URLParam(r, "course_id")

	view, err := h.gamificationSvc.GetCourseProgressView(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view)
}

// GetAllProgress は解決済みアイデンティティの全コース進捗を返します。
// GET /api/v1/progress
func (h *ProgressHandler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	store, err := h.progressSvc.GetAllProgress(r.Context())
	if err != nil {
		// 読み取り経路は常に安全なデフォルトに落ちる契約だが、念のため
		store = model.ProgressStore{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, store)
}
