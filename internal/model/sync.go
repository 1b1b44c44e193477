// internal/model/sync.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SyncCheckpoint はテナントごとの「最後に同期が完了した時刻」です。
// マージ結果の保存が完了した後にのみ前進します（グローバル変数にはしない）。
type SyncCheckpoint struct {
	TenantID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"tenant_id"`
	LastSyncAt time.Time `gorm:"not null" json:"last_sync_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (SyncCheckpoint) TableName() string {
	return "sync_checkpoints"
}

// SyncStats は1回のマージで何が起きたかの集計です。保存はしません。
type SyncStats struct {
	RemoteAdded       int `json:"remote_added"`       // リモートから追加された件数
	LocalAdded        int `json:"local_added"`        // ローカルで新規作成されていた件数
	LocalOverwritten  int `json:"local_overwritten"`  // リモート側で上書きされた件数
	RemoteOverwritten int `json:"remote_overwritten"` // ローカル側が勝った件数
	Conflicts         int `json:"conflicts"`          // 同時刻コンフリクト件数
	TotalMerged       int `json:"total_merged"`
}

// PushSyncRequest は相手デバイスのスナップショットです
type PushSyncRequest struct {
	Entries    []*Word   `json:"entries"`
	ProducedAt time.Time `json:"produced_at" validate:"required"`
}

// SyncResponse はマージ結果のレスポンスDTO
type SyncResponse struct {
	Entries    []*Word   `json:"entries"`
	Stats      SyncStats `json:"stats"`
	LastSyncAt time.Time `json:"last_sync_at"`
}

// SyncSnapshotResponse は相手側にマージしてもらうための自分のスナップショットです
type SyncSnapshotResponse struct {
	Entries    []*Word   `json:"entries"`
	ProducedAt time.Time `json:"produced_at"`
}
