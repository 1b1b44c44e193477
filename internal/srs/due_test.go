package srs

import (
	"errors"
	"testing"
	"time"

	"go_5_vocab_sync/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordWithSchedule(id uuid.UUID, nextAt time.Time) *model.Word {
	return &model.Word{
		WordID:     id,
		Term:       "term-" + id.String()[:8],
		Scheduling: model.SchedulingState{NextReviewAt: nextAt},
	}
}

func TestComputeDailyReview(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	idA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	idB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	idC := uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	t.Run("正常系: 期限超過が大きい順、同時刻はID昇順", func(t *testing.T) {
		words := []*model.Word{
			wordWithSchedule(idC, now.Add(-1*time.Hour)),
			wordWithSchedule(idB, now.Add(-48*time.Hour)),
			wordWithSchedule(idA, now.Add(24*time.Hour)), // 期限前なので対象外
		}

		info, err := ComputeDailyReview(words, now, 10, 0)
		require.NoError(t, err)

		assert.Equal(t, 2, info.DueCount)
		assert.Equal(t, []uuid.UUID{idB, idC}, info.DueWordIDs)
		assert.Equal(t, 0, info.Progress)
		assert.Equal(t, 10, info.Goal)
	})

	t.Run("正常系: 入力順に依存しない", func(t *testing.T) {
		due := now.Add(-1 * time.Hour)
		forward := []*model.Word{
			wordWithSchedule(idA, due),
			wordWithSchedule(idB, due),
			wordWithSchedule(idC, due),
		}
		reversed := []*model.Word{
			wordWithSchedule(idC, due),
			wordWithSchedule(idB, due),
			wordWithSchedule(idA, due),
		}

		got1, err := ComputeDailyReview(forward, now, 10, 0)
		require.NoError(t, err)
		got2, err := ComputeDailyReview(reversed, now, 10, 0)
		require.NoError(t, err)

		assert.Equal(t, got1.DueWordIDs, got2.DueWordIDs)
		assert.Equal(t, []uuid.UUID{idA, idB, idC}, got1.DueWordIDs)
	})

	t.Run("正常系: 対象0件はエラーではない", func(t *testing.T) {
		info, err := ComputeDailyReview(nil, now, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, info.DueCount)
		assert.Empty(t, info.DueWordIDs)
	})

	t.Run("正常系: 進捗率は100でクランプされる", func(t *testing.T) {
		info, err := ComputeDailyReview(nil, now, 10, 25)
		require.NoError(t, err)
		assert.Equal(t, 100, info.Progress)
	})

	t.Run("正常系: 進捗率は整数に切り捨て", func(t *testing.T) {
		info, err := ComputeDailyReview(nil, now, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, 33, info.Progress)
	})

	t.Run("異常系: 目標0以下はバリデーションエラー", func(t *testing.T) {
		_, err := ComputeDailyReview(nil, now, 0, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("異常系: 復習済み件数が負はバリデーションエラー", func(t *testing.T) {
		_, err := ComputeDailyReview(nil, now, 10, -1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}
