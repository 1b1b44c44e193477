// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchedulingState は単語1件分の復習スケジュール情報です。
// Wordに埋め込まれ、srs_プレフィックス付きのカラムとして保存されます。
type SchedulingState struct {
	IntervalDays    int       `gorm:"not null;default:0" json:"interval_days"`
	RepetitionCount int       `gorm:"not null;default:0" json:"repetition_count"`
	EaseFactor      float64   `gorm:"not null;default:2.5" json:"ease_factor"`
	NextReviewAt    time.Time `gorm:"not null;index" json:"next_review_at"`
}

// Word は単語とその訳、復習スケジュールを表します
type Word struct {
	WordID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"word_id"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Term         string    `gorm:"not null" json:"term"`               // 単語
	Translation  string    `gorm:"not null" json:"translation"`        // 訳語
	Definition   string    `json:"definition,omitempty"`               // 定義 (任意)
	Example      string    `json:"example,omitempty"`                  // 例文 (任意)
	PartOfSpeech string    `json:"part_of_speech,omitempty"`           // 品詞 (任意)
	Tags         []string  `gorm:"serializer:json" json:"tags,omitempty"` // タグ (任意)

	Scheduling     SchedulingState `gorm:"embedded;embeddedPrefix:srs_" json:"scheduling"`
	LastReviewedAt *time.Time      `json:"last_reviewed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用 (マージでは伝播しない)
}

func (Word) TableName() string {
	return "words"
}

// ContentEquals はスケジュールを含む内容フィールド同士を比較します。
// マージ時の同時刻コンフリクト判定に使用します (WordID/TenantID/作成・更新時刻は比較しない)。
func (w *Word) ContentEquals(other *Word) bool {
	if w.Term != other.Term ||
		w.Translation != other.Translation ||
		w.Definition != other.Definition ||
		w.Example != other.Example ||
		w.PartOfSpeech != other.PartOfSpeech {
		return false
	}
	if len(w.Tags) != len(other.Tags) {
		return false
	}
	for i := range w.Tags {
		if w.Tags[i] != other.Tags[i] {
			return false
		}
	}
	if (w.LastReviewedAt == nil) != (other.LastReviewedAt == nil) {
		return false
	}
	if w.LastReviewedAt != nil && !w.LastReviewedAt.Equal(*other.LastReviewedAt) {
		return false
	}
	return w.Scheduling == other.Scheduling
}

// 単語作成リクエストDTO
type PostWordRequest struct {
	Term         string   `json:"term" validate:"required"`
	Translation  string   `json:"translation" validate:"required"`
	Definition   string   `json:"definition,omitempty"`
	Example      string   `json:"example,omitempty"`
	PartOfSpeech string   `json:"part_of_speech,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// 単語更新（全体）リクエストDTO
type PutWordRequest struct {
	Term         string   `json:"term" validate:"required"`
	Translation  string   `json:"translation" validate:"required"`
	Definition   string   `json:"definition,omitempty"`
	Example      string   `json:"example,omitempty"`
	PartOfSpeech string   `json:"part_of_speech,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// 単語更新（部分）リクエストDTO
type PatchWordRequest struct {
	Term         *string   `json:"term,omitempty" validate:"omitempty,min=1"`
	Translation  *string   `json:"translation,omitempty" validate:"omitempty,min=1"`
	Definition   *string   `json:"definition,omitempty"`
	Example      *string   `json:"example,omitempty"`
	PartOfSpeech *string   `json:"part_of_speech,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
}
