// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewWordResponse は復習対象単語1件のレスポンスDTO
type ReviewWordResponse struct {
	WordID       uuid.UUID `json:"word_id"`
	Term         string    `json:"term"`
	Translation  string    `json:"translation"`
	NextReviewAt time.Time `json:"next_review_at"`
}

// SubmitReviewRequest は復習結果の報告DTO。RatingはSM-2の0〜5段階評価。
type SubmitReviewRequest struct {
	Rating *int `json:"rating" validate:"required,min=0,max=5"`
}

// DailyReviewInfo は「今日の復習」の導出情報です。保存されず、都度再計算されます。
type DailyReviewInfo struct {
	DueWordIDs []uuid.UUID `json:"due_word_ids"` // 期限超過が大きい順
	DueCount   int         `json:"due_count"`
	Progress   int         `json:"progress"` // 0〜100
	Goal       int         `json:"goal"`
}
