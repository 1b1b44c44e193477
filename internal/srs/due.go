// internal/srs/due.go
package srs

import (
	"sort"
	"strings"
	"time"

	"go_5_vocab_sync/internal/model"

	"github.com/google/uuid"
)

// ComputeDailyReview は「今日の復習」情報を導出します。
// 復習対象は NextReviewAt 昇順（期限超過が大きい順）、同時刻は WordID 昇順で並びます。
// コレクションの反復順には依存しません。対象0件はエラーではなく正常な状態です。
func ComputeDailyReview(words []*model.Word, now time.Time, goal, reviewedToday int) (*model.DailyReviewInfo, error) {
	if goal <= 0 {
		return nil, model.NewAppError(
			"VALIDATION_ERROR", "1日の目標件数は1以上で指定してください。", "goal", model.ErrInvalidInput)
	}
	if reviewedToday < 0 {
		return nil, model.NewAppError(
			"VALIDATION_ERROR", "本日の復習済み件数が不正です。", "reviewed_today", model.ErrInvalidInput)
	}

	due := make([]*model.Word, 0, len(words))
	for _, w := range words {
		if IsDue(w.Scheduling, now) {
			due = append(due, w)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if !a.Scheduling.NextReviewAt.Equal(b.Scheduling.NextReviewAt) {
			return a.Scheduling.NextReviewAt.Before(b.Scheduling.NextReviewAt)
		}
		return strings.Compare(a.WordID.String(), b.WordID.String()) < 0
	})

	ids := make([]uuid.UUID, len(due))
	for i, w := range due {
		ids[i] = w.WordID
	}

	progress := 100 * reviewedToday / goal
	if progress > 100 {
		progress = 100
	}

	return &model.DailyReviewInfo{
		DueWordIDs: ids,
		DueCount:   len(ids),
		Progress:   progress,
		Goal:       goal,
	}, nil
}
