package service

import (
	"context"
	"testing"

	"go_5_vocab_sync/internal/model"
	"go_5_vocab_sync/internal/repository/mocks"
	"go_5_vocab_sync/internal/srs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_wordService_CreateWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tenantID := uuid.New()

	req := &model.PostWordRequest{
		Term:        "apple",
		Translation: "りんご",
		Tags:        []string{"fruit"},
	}

	t.Run("正常系: 作成直後は即時復習対象のスケジュールを持つ", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("CheckTermExists", ctx, mock.Anything, tenantID, "apple", (*uuid.UUID)(nil)).
			Return(false, nil).Once()
		mockWordRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(w *model.Word) bool {
			return w.Term == "apple" &&
				w.TenantID == tenantID &&
				w.Scheduling.RepetitionCount == 0 &&
				w.Scheduling.EaseFactor == srs.InitialEaseFactor
		})).Return(nil).Once()

		svc := NewWordService(db, mockWordRepo)
		word, err := svc.CreateWord(ctx, tenantID, req)

		require.NoError(t, err)
		assert.Equal(t, "apple", word.Term)
		assert.Equal(t, "りんご", word.Translation)
		assert.NotEqual(t, uuid.Nil, word.WordID)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 単語が重複していたらコンフリクト", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("CheckTermExists", ctx, mock.Anything, tenantID, "apple", (*uuid.UUID)(nil)).
			Return(true, nil).Once()

		svc := NewWordService(db, mockWordRepo)
		_, err := svc.CreateWord(ctx, tenantID, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		mockWordRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func Test_wordService_GetWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tenantID := uuid.New()
	wordID := uuid.New()

	t.Run("正常系: 取得成功", func(t *testing.T) {
		want := &model.Word{WordID: wordID, TenantID: tenantID, Term: "found"}
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByID", ctx, db, tenantID, wordID).Return(want, nil).Once()

		svc := NewWordService(db, mockWordRepo)
		got, err := svc.GetWord(ctx, tenantID, wordID)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("異常系: 見つからない", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByID", ctx, db, tenantID, wordID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewWordService(db, mockWordRepo)
		_, err := svc.GetWord(ctx, tenantID, wordID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_wordService_PatchWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tenantID := uuid.New()
	wordID := uuid.New()

	t.Run("正常系: 指定フィールドのみ更新される", func(t *testing.T) {
		newTranslation := "新しい訳"
		updated := &model.Word{WordID: wordID, TenantID: tenantID, Term: "keep", Translation: newTranslation}

		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("Update", ctx, mock.Anything, tenantID, wordID,
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				_, hasTerm := updates["term"]
				return !hasTerm && updates["translation"] == newTranslation
			})).Return(nil).Once()
		mockWordRepo.On("FindByID", ctx, mock.Anything, tenantID, wordID).
			Return(updated, nil).Once()

		svc := NewWordService(db, mockWordRepo)
		got, err := svc.PatchWord(ctx, tenantID, wordID, &model.PatchWordRequest{
			Translation: &newTranslation,
		})

		require.NoError(t, err)
		assert.Equal(t, newTranslation, got.Translation)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("正常系: 空のPATCHは取得のみで更新しない", func(t *testing.T) {
		existing := &model.Word{WordID: wordID, TenantID: tenantID, Term: "keep"}

		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByID", ctx, mock.Anything, tenantID, wordID).
			Return(existing, nil).Once()

		svc := NewWordService(db, mockWordRepo)
		got, err := svc.PatchWord(ctx, tenantID, wordID, &model.PatchWordRequest{})

		require.NoError(t, err)
		assert.Equal(t, existing, got)
		mockWordRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func Test_wordService_DeleteWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tenantID := uuid.New()
	wordID := uuid.New()

	t.Run("正常系: 削除成功", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("Delete", ctx, mock.Anything, tenantID, wordID).Return(nil).Once()

		svc := NewWordService(db, mockWordRepo)
		err := svc.DeleteWord(ctx, tenantID, wordID)

		require.NoError(t, err)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 対象が存在しない", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("Delete", ctx, mock.Anything, tenantID, wordID).
			Return(model.ErrNotFound).Once()

		svc := NewWordService(db, mockWordRepo)
		err := svc.DeleteWord(ctx, tenantID, wordID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
