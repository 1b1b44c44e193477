// internal/srs/sm2.go
package srs

import (
	"math"
	"time"

	"go_5_vocab_sync/internal/model"
)

// SM-2系アルゴリズムの定数
const (
	MinRating = 0
	MaxRating = 5

	// rating がこの値未満なら失敗扱い（間隔リセット）
	FailThreshold = 3

	InitialEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// 1回目・2回目の成功時の固定間隔（日）
	FirstInterval  = 1
	SecondInterval = 6

	DefaultEasyBonus        = 1.3
	DefaultIntervalModifier = 1.0
)

// Config はスケジュール計算の調整パラメータです。
// 0以下の値はエラーにせずデフォルト値に置き換えます（致命的でないチューニング値のため）。
type Config struct {
	EasyBonus        float64
	IntervalModifier float64
}

func (c Config) withDefaults() Config {
	if c.EasyBonus <= 0 {
		c.EasyBonus = DefaultEasyBonus
	}
	if c.IntervalModifier <= 0 {
		c.IntervalModifier = DefaultIntervalModifier
	}
	return c
}

// NewState は作成直後のスケジュール状態を返します。NextReviewAtが現在時刻なので即時復習対象です。
func NewState(now time.Time) model.SchedulingState {
	return model.SchedulingState{
		IntervalDays:    0,
		RepetitionCount: 0,
		EaseFactor:      InitialEaseFactor,
		NextReviewAt:    now,
	}
}

// NextState は復習結果(rating 0〜5)から次のスケジュール状態を計算します。
// 純粋関数であり、同じ入力（nowを含む）に対して常に同じ出力を返します。
func NextState(cur model.SchedulingState, rating int, now time.Time, cfg Config) (model.SchedulingState, error) {
	if rating < MinRating || rating > MaxRating {
		return model.SchedulingState{}, model.NewAppError(
			"VALIDATION_ERROR", "ratingは0〜5の整数で指定してください。", "rating", model.ErrInvalidInput)
	}
	cfg = cfg.withDefaults()

	// 易度係数の更新。失敗時も更新されるが、下限1.3でクランプする。
	q := float64(rating)
	ease := cur.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}

	next := model.SchedulingState{EaseFactor: ease}

	if rating < FailThreshold {
		// 間違えたら学習の階段を最初からやり直す
		next.RepetitionCount = 0
		next.IntervalDays = FirstInterval
	} else {
		switch cur.RepetitionCount {
		case 0:
			next.IntervalDays = FirstInterval
		case 1:
			// 2回目の成功は易度係数に関係なく固定6日
			next.IntervalDays = SecondInterval
		default:
			next.IntervalDays = int(math.Round(float64(cur.IntervalDays) * ease * cfg.IntervalModifier))
		}
		next.RepetitionCount = cur.RepetitionCount + 1

		if rating == MaxRating {
			next.IntervalDays = int(math.Round(float64(next.IntervalDays) * cfg.EasyBonus))
		}
	}

	next.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)
	return next, nil
}

// IsDue は単語が復習対象かどうかを返します (now >= NextReviewAt)。
func IsDue(st model.SchedulingState, now time.Time) bool {
	return !now.Before(st.NextReviewAt)
}

// DaysUntilDue は次の復習までの残り日数（切り上げ、最小0）を返します。
func DaysUntilDue(st model.SchedulingState, now time.Time) int {
	if IsDue(st, now) {
		return 0
	}
	days := int(math.Ceil(st.NextReviewAt.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
