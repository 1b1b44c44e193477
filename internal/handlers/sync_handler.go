package handlers

import (
	"net/http"

	"go_5_vocab_sync/internal/middleware"
	"go_5_vocab_sync/internal/model"
	"go_5_vocab_sync/internal/service"
	"go_5_vocab_sync/internal/webutil"
)

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(s service.SyncService) *SyncHandler {
	return &SyncHandler{service: s}
}

// PushSnapshot は相手デバイスのスナップショットを受け取り、マージ結果を返すためのハンドラ
func (h *SyncHandler) PushSnapshot(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "PushSnapshot")

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With("tenant_id", tenantID.String())

	var req model.PushSyncRequest
	if err := webutil.DecodeJSONBody(r, logger, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := validateStruct(logger, req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.PushSnapshot(r.Context(), tenantID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Snapshot pushed successfully",
		"total_merged", resp.Stats.TotalMerged,
		"conflicts", resp.Stats.Conflicts,
	)
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetSnapshot は相手デバイス側でマージしてもらうためのスナップショットを返すハンドラ
func (h *SyncHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GetSnapshot")

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.ExportSnapshot(r.Context(), tenantID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if resp.Entries == nil {
		resp.Entries = []*model.Word{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
