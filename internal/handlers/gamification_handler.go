// internal/handlers/gamification_handler.go
package handlers

import (
	"net/http"

	"codeflux_backend/internal/config"
	"codeflux_backend/internal/middleware"
	"codeflux_backend/internal/model"
	"codeflux_backend/internal/service"
	"codeflux_backend/internal/webutil"
)

type GamificationHandler struct {
	gamificationSvc service.GamificationService
	cfg             *config.Config
}

func NewGamificationHandler(gamificationSvc service.GamificationService, cfg *config.Config) *GamificationHandler {
	return &GamificationHandler{
		gamificationSvc: gamificationSvc,
		cfg:             cfg,
	}
}

// GetSummary はXP・レベル・コース別完了率・実績の集計を返します。
// GET /api/v1/gamification/summary
func (h *GamificationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	summary, err := h.gamificationSvc.GetSummary(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary)
}

// GetLevels はレベル閾値テーブルを返します (固定データ)。
// GET /api/v1/gamification/levels
func (h *GamificationHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, model.LevelThresholds)
}

// GetAchievements は実績カタログ全件を返します (固定データ)。
// GET /api/v1/gamification/achievements
func (h *GamificationHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, model.GetAllAchievements())
}

// CalculateXP はアクションと補助情報から獲得XPを計算して返します。
// 純粋計算のみで、何も永続化しません。
// POST /api/v1/gamification/xp
func (h *GamificationHandler) CalculateXP(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.CalculateXPRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_BODY", "リクエストボディが不正です。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	xp := service.CalculateXP(model.XPAction(req.Action), req.Metadata, h.cfg.App.ComposeXPBonuses)
	webutil.RespondWithJSON(w, http.StatusOK, model.CalculateXPResponse{
		Action: req.Action,
		XP:     xp,
	})
}
