package service

import (
	"context"
	"testing"
	"time"

	"go_5_vocab_sync/internal/model"
	"go_5_vocab_sync/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_syncService_PushSnapshot(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	tenantID := uuid.New()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	producedAt := base.Add(48 * time.Hour)

	localWord := &model.Word{
		WordID: uuid.New(), TenantID: tenantID, Term: "local", Translation: "ローカル",
		CreatedAt: base, UpdatedAt: base,
	}
	remoteWord := &model.Word{
		WordID: uuid.New(), Term: "remote", Translation: "リモート",
		CreatedAt: base, UpdatedAt: base,
	}

	t.Run("正常系: 初回同期でリモートのエントリが追加される", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockCpRepo := new(mocks.CheckpointRepository)

		mockCpRepo.On("Get", ctx, mock.Anything, tenantID).
			Return(nil, model.ErrNotFound).Once()
		mockWordRepo.On("FindByTenant", ctx, mock.Anything, tenantID).
			Return([]*model.Word{localWord}, nil).Once()
		mockWordRepo.On("ReplaceAllByTenant", ctx, mock.Anything, tenantID,
			mock.MatchedBy(func(words []*model.Word) bool {
				return len(words) == 2
			})).Return(nil).Once()
		mockCpRepo.On("Upsert", ctx, mock.Anything, tenantID, producedAt).
			Return(nil).Once()

		svc := NewSyncService(db, mockWordRepo, mockCpRepo)
		resp, err := svc.PushSnapshot(ctx, tenantID, &model.PushSyncRequest{
			Entries:    []*model.Word{remoteWord},
			ProducedAt: producedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Stats.TotalMerged)
		assert.Equal(t, 1, resp.Stats.RemoteAdded)
		assert.Equal(t, producedAt, resp.LastSyncAt)
		// リモートエントリに自テナントIDが補完されていること
		assert.Equal(t, tenantID, remoteWord.TenantID)
		mockWordRepo.AssertExpectations(t)
		mockCpRepo.AssertExpectations(t)
	})

	t.Run("正常系: 古いスナップショットではチェックポイントが後退しない", func(t *testing.T) {
		cp := &model.SyncCheckpoint{TenantID: tenantID, LastSyncAt: producedAt}
		oldProducedAt := base // チェックポイントより古い

		mockWordRepo := new(mocks.WordRepository)
		mockCpRepo := new(mocks.CheckpointRepository)

		mockCpRepo.On("Get", ctx, mock.Anything, tenantID).Return(cp, nil).Once()
		mockWordRepo.On("FindByTenant", ctx, mock.Anything, tenantID).
			Return([]*model.Word{}, nil).Once()
		mockWordRepo.On("ReplaceAllByTenant", ctx, mock.Anything, tenantID, mock.Anything).
			Return(nil).Once()
		// 据え置きの値でUpsertされる
		mockCpRepo.On("Upsert", ctx, mock.Anything, tenantID, producedAt).
			Return(nil).Once()

		svc := NewSyncService(db, mockWordRepo, mockCpRepo)
		resp, err := svc.PushSnapshot(ctx, tenantID, &model.PushSyncRequest{
			Entries:    nil,
			ProducedAt: oldProducedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, producedAt, resp.LastSyncAt)
		mockCpRepo.AssertExpectations(t)
	})

	t.Run("異常系: 保存に失敗したらチェックポイントは前進しない", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockCpRepo := new(mocks.CheckpointRepository)

		mockCpRepo.On("Get", ctx, mock.Anything, tenantID).
			Return(nil, model.ErrNotFound).Once()
		mockWordRepo.On("FindByTenant", ctx, mock.Anything, tenantID).
			Return([]*model.Word{}, nil).Once()
		mockWordRepo.On("ReplaceAllByTenant", ctx, mock.Anything, tenantID, mock.Anything).
			Return(assert.AnError).Once()

		svc := NewSyncService(db, mockWordRepo, mockCpRepo)
		_, err := svc.PushSnapshot(ctx, tenantID, &model.PushSyncRequest{
			Entries:    []*model.Word{{WordID: uuid.New(), Term: "x"}},
			ProducedAt: producedAt,
		})

		require.Error(t, err)
		mockCpRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: エントリにnullが含まれていたら入力エラー", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockCpRepo := new(mocks.CheckpointRepository)

		svc := NewSyncService(db, mockWordRepo, mockCpRepo)
		_, err := svc.PushSnapshot(ctx, tenantID, &model.PushSyncRequest{
			Entries:    []*model.Word{nil},
			ProducedAt: producedAt,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		mockWordRepo.AssertNotCalled(t, "ReplaceAllByTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: 他テナントのエントリが混入していたら拒否する", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockCpRepo := new(mocks.CheckpointRepository)

		svc := NewSyncService(db, mockWordRepo, mockCpRepo)
		_, err := svc.PushSnapshot(ctx, tenantID, &model.PushSyncRequest{
			Entries:    []*model.Word{{WordID: uuid.New(), TenantID: uuid.New(), Term: "evil"}},
			ProducedAt: producedAt,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrForbidden)
		mockWordRepo.AssertNotCalled(t, "ReplaceAllByTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func Test_syncService_ExportSnapshot(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	tenantID := uuid.New()
	words := []*model.Word{
		{WordID: uuid.New(), TenantID: tenantID, Term: "export"},
	}

	mockWordRepo := new(mocks.WordRepository)
	mockCpRepo := new(mocks.CheckpointRepository)
	mockWordRepo.On("FindByTenant", ctx, db, tenantID).Return(words, nil).Once()

	svc := NewSyncService(db, mockWordRepo, mockCpRepo)

	before := time.Now()
	resp, err := svc.ExportSnapshot(ctx, tenantID)
	after := time.Now()

	require.NoError(t, err)
	assert.Equal(t, words, resp.Entries)
	assert.False(t, resp.ProducedAt.Before(before))
	assert.False(t, resp.ProducedAt.After(after))
	mockWordRepo.AssertExpectations(t)
}
