//go:generate mockery --name CheckpointRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_vocab_sync/internal/middleware"
	"go_5_vocab_sync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckpointRepository はテナントごとの同期チェックポイントを管理します。
type CheckpointRepository interface {
	Get(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) (*model.SyncCheckpoint, error)
	Upsert(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, lastSyncAt time.Time) error
}

type gormCheckpointRepository struct{}

func NewGormCheckpointRepository() CheckpointRepository {
	return &gormCheckpointRepository{}
}

func (r *gormCheckpointRepository) Get(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) (*model.SyncCheckpoint, error) {
	var cp model.SyncCheckpoint
	result := db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&cp)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCheckpointRepository.Get: %w", result.Error)
	}
	return &cp, nil
}

func (r *gormCheckpointRepository) Upsert(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, lastSyncAt time.Time) error {
	logger := middleware.GetLogger(ctx)
	cp := &model.SyncCheckpoint{
		TenantID:   tenantID,
		LastSyncAt: lastSyncAt,
	}
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_sync_at", "updated_at"}),
	}).Create(cp)
	if result.Error != nil {
		logger.Error("Error upserting sync checkpoint in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return fmt.Errorf("gormCheckpointRepository.Upsert: %w", result.Error)
	}
	return nil
}
