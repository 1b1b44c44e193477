package srs

import (
	"errors"
	"testing"
	"time"

	"go_5_vocab_sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	st := NewState(now)

	assert.Equal(t, 0, st.IntervalDays)
	assert.Equal(t, 0, st.RepetitionCount)
	assert.Equal(t, InitialEaseFactor, st.EaseFactor)
	// 作成直後は即時復習対象
	assert.True(t, IsDue(st, now))
}

func TestNextState(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		cur          model.SchedulingState
		rating       int
		cfg          Config
		wantInterval int
		wantRepCount int
		wantEase     float64
	}{
		{
			name:         "正常系: 初回成功(rating=4)は1日後",
			cur:          model.SchedulingState{IntervalDays: 0, RepetitionCount: 0, EaseFactor: 2.5},
			rating:       4,
			wantInterval: 1,
			wantRepCount: 1,
			wantEase:     2.5, // 2.5 + (0.1 - 1*(0.08+1*0.02)) = 2.5
		},
		{
			name:         "正常系: 2回目成功(rating=4)は固定6日",
			cur:          model.SchedulingState{IntervalDays: 1, RepetitionCount: 1, EaseFactor: 2.5},
			rating:       4,
			wantInterval: 6,
			wantRepCount: 2,
			wantEase:     2.5,
		},
		{
			name:         "正常系: 3回目以降は間隔×易度係数(rating=4)",
			cur:          model.SchedulingState{IntervalDays: 6, RepetitionCount: 2, EaseFactor: 2.5},
			rating:       4,
			wantInterval: 15, // round(6 * 2.5)
			wantRepCount: 3,
			wantEase:     2.5,
		},
		{
			name:         "正常系: rating=5はイージーボーナスが掛かる",
			cur:          model.SchedulingState{IntervalDays: 6, RepetitionCount: 2, EaseFactor: 2.5},
			rating:       5,
			wantInterval: 21, // round(6*2.6)=16, round(16*1.3)=21
			wantRepCount: 3,
			wantEase:     2.6, // 2.5 + 0.1
		},
		{
			name:         "正常系: 失敗(rating=2)で間隔リセット",
			cur:          model.SchedulingState{IntervalDays: 30, RepetitionCount: 5, EaseFactor: 2.5},
			rating:       2,
			wantInterval: 1,
			wantRepCount: 0,
			wantEase:     2.18, // 2.5 + (0.1 - 3*(0.08+3*0.02)) = 2.5 - 0.32
		},
		{
			name:         "正常系: 易度係数は1.3未満にならない",
			cur:          model.SchedulingState{IntervalDays: 1, RepetitionCount: 0, EaseFactor: 1.3},
			rating:       0,
			wantInterval: 1,
			wantRepCount: 0,
			wantEase:     MinEaseFactor,
		},
		{
			name:         "正常系: IntervalModifierが間隔に反映される",
			cur:          model.SchedulingState{IntervalDays: 10, RepetitionCount: 3, EaseFactor: 2.0},
			rating:       4,
			cfg:          Config{IntervalModifier: 0.5},
			wantInterval: 10, // round(10 * 2.0 * 0.5)
			wantRepCount: 4,
			wantEase:     2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextState(tt.cur, tt.rating, now, tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.wantInterval, got.IntervalDays)
			assert.Equal(t, tt.wantRepCount, got.RepetitionCount)
			assert.InDelta(t, tt.wantEase, got.EaseFactor, 1e-9)
			assert.Equal(t, now.AddDate(0, 0, tt.wantInterval), got.NextReviewAt)
		})
	}
}

func TestNextState_ConsecutiveEasyRatings(t *testing.T) {
	// 新規作成直後にrating=5を2回続けた場合の間隔の推移: 1日 → 8日
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	st := NewState(now)

	first, err := NextState(st, MaxRating, now, Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.IntervalDays) // round(1 * 1.3) = 1
	assert.Equal(t, 1, first.RepetitionCount)
	assert.InDelta(t, 2.6, first.EaseFactor, 1e-9) // 2.5 + 0.1

	reviewedAt := now.AddDate(0, 0, first.IntervalDays)
	second, err := NextState(first, MaxRating, reviewedAt, Config{})
	require.NoError(t, err)
	assert.Equal(t, 8, second.IntervalDays) // 固定6日にボーナス: round(6 * 1.3) = 8
	assert.Equal(t, 2, second.RepetitionCount)
	assert.InDelta(t, 2.7, second.EaseFactor, 1e-9)
	assert.Equal(t, reviewedAt.AddDate(0, 0, 8), second.NextReviewAt)
}

func TestNextState_InvalidRating(t *testing.T) {
	now := time.Now()
	cur := NewState(now)

	for _, rating := range []int{-1, 6, 100} {
		_, err := NextState(cur, rating, now, Config{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	}
}

func TestNextState_Deterministic(t *testing.T) {
	// 同じ入力に対して常に同じ出力を返すこと
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	cur := model.SchedulingState{IntervalDays: 6, RepetitionCount: 2, EaseFactor: 2.5}

	first, err := NextState(cur, 4, now, Config{})
	require.NoError(t, err)
	second, err := NextState(cur, 4, now, Config{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIsDueAndDaysUntilDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		nextAt   time.Time
		wantDue  bool
		wantDays int
	}{
		{"正常系: 期限ちょうどは復習対象", now, true, 0},
		{"正常系: 期限超過は復習対象", now.Add(-48 * time.Hour), true, 0},
		{"正常系: 期限前は対象外", now.Add(72 * time.Hour), false, 3},
		{"正常系: 半端な残り時間は切り上げ", now.Add(25 * time.Hour), false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := model.SchedulingState{NextReviewAt: tt.nextAt}
			assert.Equal(t, tt.wantDue, IsDue(st, now))
			assert.Equal(t, tt.wantDays, DaysUntilDue(st, now))
		})
	}
}
