package service

import (
	"context"
	"errors"
	"time"

	"go_5_vocab_sync/internal/middleware"
	"go_5_vocab_sync/internal/model"
	"go_5_vocab_sync/internal/repository"
	"go_5_vocab_sync/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordService interface {
	CreateWord(ctx context.Context, tenantID uuid.UUID, req *model.PostWordRequest) (*model.Word, error)
	GetWord(ctx context.Context, tenantID, wordID uuid.UUID) (*model.Word, error)
	ListWords(ctx context.Context, tenantID uuid.UUID) ([]*model.Word, error)
	UpdateWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PutWordRequest) (*model.Word, error)
	PatchWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PatchWordRequest) (*model.Word, error)
	DeleteWord(ctx context.Context, tenantID, wordID uuid.UUID) error
}

type wordService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	wordRepo repository.WordRepository
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository) WordService {
	return &wordService{
		db:       db,
		wordRepo: wordRepo,
	}
}

func (s *wordService) CreateWord(ctx context.Context, tenantID uuid.UUID, req *model.PostWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)
	var createdWord *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 同一テナント内での単語の重複チェック
		exists, err := s.wordRepo.CheckTermExists(ctx, tx, tenantID, req.Term, nil)
		if err != nil {
			logger.Error("Error checking term existence in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の重複チェックに失敗しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_TERM", "この単語は既に登録されています。", "term", model.ErrConflict)
		}

		// 作成直後は即時復習対象 (NextReviewAt = 現在時刻)
		now := time.Now()
		word := &model.Word{
			WordID:       uuid.New(),
			TenantID:     tenantID,
			Term:         req.Term,
			Translation:  req.Translation,
			Definition:   req.Definition,
			Example:      req.Example,
			PartOfSpeech: req.PartOfSpeech,
			Tags:         req.Tags,
			Scheduling:   srs.NewState(now),
		}
		if err := s.wordRepo.Create(ctx, tx, word); err != nil {
			logger.Error("Error creating word in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の作成に失敗しました。", "", err)
		}

		createdWord = word
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word created", "word_id", createdWord.WordID, "term", createdWord.Term)
	return createdWord, nil
}

func (s *wordService) GetWord(ctx context.Context, tenantID, wordID uuid.UUID) (*model.Word, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, tenantID, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}
	return word, nil
}

func (s *wordService) ListWords(ctx context.Context, tenantID uuid.UUID) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)
	words, err := s.wordRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Error listing words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語一覧の取得に失敗しました。", "", err)
	}
	return words, nil
}

func (s *wordService) UpdateWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PutWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "word_id", wordID)
	var updatedWord *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.wordRepo.CheckTermExists(ctx, tx, tenantID, req.Term, &wordID)
		if err != nil {
			logger.Error("Error checking term existence in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の重複チェックに失敗しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_TERM", "この単語は既に登録されています。", "term", model.ErrConflict)
		}

		// PUTなので内容フィールドを全て置き換える (スケジュールは変更しない)
		updates := map[string]interface{}{
			"term":           req.Term,
			"translation":    req.Translation,
			"definition":     req.Definition,
			"example":        req.Example,
			"part_of_speech": req.PartOfSpeech,
			"tags":           req.Tags,
		}
		if err := s.wordRepo.Update(ctx, tx, tenantID, wordID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error updating word in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の更新に失敗しました。", "", err)
		}

		word, err := s.wordRepo.FindByID(ctx, tx, tenantID, wordID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "更新後の単語の取得に失敗しました。", "", err)
		}
		updatedWord = word
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word updated", "term", updatedWord.Term)
	return updatedWord, nil
}

func (s *wordService) PatchWord(ctx context.Context, tenantID, wordID uuid.UUID, req *model.PatchWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "word_id", wordID)
	var updatedWord *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.Term != nil {
			exists, err := s.wordRepo.CheckTermExists(ctx, tx, tenantID, *req.Term, &wordID)
			if err != nil {
				logger.Error("Error checking term existence in transaction", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の重複チェックに失敗しました。", "", err)
			}
			if exists {
				return model.NewAppError("DUPLICATE_TERM", "この単語は既に登録されています。", "term", model.ErrConflict)
			}
			updates["term"] = *req.Term
		}
		if req.Translation != nil {
			updates["translation"] = *req.Translation
		}
		if req.Definition != nil {
			updates["definition"] = *req.Definition
		}
		if req.Example != nil {
			updates["example"] = *req.Example
		}
		if req.PartOfSpeech != nil {
			updates["part_of_speech"] = *req.PartOfSpeech
		}
		if req.Tags != nil {
			updates["tags"] = *req.Tags
		}

		if len(updates) > 0 {
			if err := s.wordRepo.Update(ctx, tx, tenantID, wordID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
				}
				logger.Error("Error patching word in transaction", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の更新に失敗しました。", "", err)
			}
		}

		word, err := s.wordRepo.FindByID(ctx, tx, tenantID, wordID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "更新後の単語の取得に失敗しました。", "", err)
		}
		updatedWord = word
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updatedWord, nil
}

func (s *wordService) DeleteWord(ctx context.Context, tenantID, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "word_id", wordID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wordRepo.Delete(ctx, tx, tenantID, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error deleting word in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Word deleted")
	return nil
}
