package service

import (
	"context"
	"errors"
	"time"

	"go_5_vocab_sync/internal/middleware"
	"go_5_vocab_sync/internal/model"
	"go_5_vocab_sync/internal/repository"
	"go_5_vocab_sync/internal/syncer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SyncService interface {
	PushSnapshot(ctx context.Context, tenantID uuid.UUID, req *model.PushSyncRequest) (*model.SyncResponse, error)
	ExportSnapshot(ctx context.Context, tenantID uuid.UUID) (*model.SyncSnapshotResponse, error)
}

type syncService struct {
	db             *gorm.DB
	wordRepo       repository.WordRepository
	checkpointRepo repository.CheckpointRepository
}

func NewSyncService(db *gorm.DB, wordRepo repository.WordRepository, checkpointRepo repository.CheckpointRepository) SyncService {
	return &syncService{
		db:             db,
		wordRepo:       wordRepo,
		checkpointRepo: checkpointRepo,
	}
}

// PushSnapshot は相手デバイスのスナップショットをサーバー側コレクションへマージします。
// マージ・保存・チェックポイント前進は単一トランザクションで行います。
// 途中で失敗した場合はチェックポイントが据え置かれるため、同じスナップショットを
// 再送すれば同じ結果になります（マージが冪等なため）。
func (s *syncService) PushSnapshot(ctx context.Context, tenantID uuid.UUID, req *model.PushSyncRequest) (*model.SyncResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	// nullエントリと他テナントのエントリが混入していないか検証
	for i, w := range req.Entries {
		if w == nil {
			logger.Warn("Snapshot contains null entry", "index", i)
			return nil, model.NewAppError("INVALID_REQUEST", "スナップショットのエントリにnullが含まれています。", "entries", model.ErrInvalidInput)
		}
		if w.TenantID != uuid.Nil && w.TenantID != tenantID {
			logger.Warn("Snapshot contains entry for another tenant", "entry_tenant_id", w.TenantID)
			return nil, model.NewAppError("FORBIDDEN", "スナップショットに他のユーザーのエントリが含まれています。", "entries", model.ErrForbidden)
		}
		w.TenantID = tenantID
	}

	var resp *model.SyncResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// チェックポイント取得 (初回同期はゼロ値)
		var checkpoint time.Time
		cp, err := s.checkpointRepo.Get(ctx, tx, tenantID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				logger.Error("Error getting sync checkpoint", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "同期チェックポイントの取得に失敗しました。", "", err)
			}
		} else {
			checkpoint = cp.LastSyncAt
		}

		local, err := s.wordRepo.FindByTenant(ctx, tx, tenantID)
		if err != nil {
			logger.Error("Error loading local words for merge", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語一覧の取得に失敗しました。", "", err)
		}

		remote := syncer.Snapshot{Entries: req.Entries, ProducedAt: req.ProducedAt}
		merged, stats := syncer.Merge(local, remote, checkpoint)

		if err := s.wordRepo.ReplaceAllByTenant(ctx, tx, tenantID, merged); err != nil {
			logger.Error("Error storing merged words", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "マージ結果の保存に失敗しました。", "", err)
		}

		// 保存が成功した場合にのみチェックポイントを前進させる
		nextCheckpoint := syncer.NextCheckpoint(checkpoint, req.ProducedAt)
		if err := s.checkpointRepo.Upsert(ctx, tx, tenantID, nextCheckpoint); err != nil {
			logger.Error("Error advancing sync checkpoint", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "同期チェックポイントの更新に失敗しました。", "", err)
		}

		resp = &model.SyncResponse{
			Entries:    merged,
			Stats:      stats,
			LastSyncAt: nextCheckpoint,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Snapshot merged",
		"total_merged", resp.Stats.TotalMerged,
		"remote_added", resp.Stats.RemoteAdded,
		"local_added", resp.Stats.LocalAdded,
		"conflicts", resp.Stats.Conflicts,
		"last_sync_at", resp.LastSyncAt,
	)
	return resp, nil
}

// ExportSnapshot は相手デバイス側でマージしてもらうための自分のスナップショットを返します。
func (s *syncService) ExportSnapshot(ctx context.Context, tenantID uuid.UUID) (*model.SyncSnapshotResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	words, err := s.wordRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Error exporting snapshot", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "スナップショットの作成に失敗しました。", "", err)
	}

	return &model.SyncSnapshotResponse{
		Entries:    words,
		ProducedAt: time.Now(),
	}, nil
}
