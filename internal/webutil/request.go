package webutil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"go_5_vocab_sync/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, logger *slog.Logger, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST", "リクエストボディが必要です。", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		logger.Warn("Error decoding JSON body", "error", err)
		return model.NewAppError("INVALID_REQUEST", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
	}
	return nil
}
