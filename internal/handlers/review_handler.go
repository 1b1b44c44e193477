package handlers

import (
	"net/http"

	"go_5_vocab_sync/internal/middleware"
	"go_5_vocab_sync/internal/model"
	"go_5_vocab_sync/internal/service"
	"go_5_vocab_sync/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

// GetReviewWords は復習対象の単語一覧を返すためのハンドラ
func (h *ReviewHandler) GetReviewWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GetReviewWords")

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	words, err := h.service.GetReviewWords(r.Context(), tenantID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.ReviewWordResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

// GetDailyReview は「今日の復習」情報（対象ID・件数・進捗率・目標）を返すためのハンドラ
func (h *ReviewHandler) GetDailyReview(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GetDailyReview")

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	info, err := h.service.GetDailyReview(r.Context(), tenantID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, info, logger)
}

// SubmitReviewResult は復習結果(rating)を受け取り、次のスケジュールを返すためのハンドラ
func (h *ReviewHandler) SubmitReviewResult(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "SubmitReviewResult")

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	wordIDStr := chi.URLParam(r, "word_id")
	wordID, err := uuid.Parse(wordIDStr)
	if err != nil {
		appErr := model.NewAppError("INVALID_REQUEST", "単語IDの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With("tenant_id", tenantID.String(), "word_id", wordID.String())

	var req model.SubmitReviewRequest
	if err := webutil.DecodeJSONBody(r, logger, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := validateStruct(logger, req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	word, err := h.service.SubmitReview(r.Context(), tenantID, wordID, *req.Rating)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review result submitted", "rating", *req.Rating)
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}
