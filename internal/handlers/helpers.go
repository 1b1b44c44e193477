package handlers

import (
	"errors"
	"log/slog"

	"go_5_vocab_sync/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// validateStruct はDTOのバリデーションを実行し、失敗時は翻訳済みAppErrorを返します。
func validateStruct(logger *slog.Logger, req interface{}) error {
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", "errors", validationErrors.Error())
			return webutil.NewValidationErrorResponse(validationErrors)
		}
		// バリデーションライブラリ自体のエラーなど、予期せぬエラー
		logger.Error("Unexpected error during validation", "error", err)
		return err
	}
	return nil
}
