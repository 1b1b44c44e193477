//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
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
)

type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, wordID uuid.UUID) (*model.Word, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Word, error)
	FindDueByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, now time.Time, limit int) ([]*model.Word, error)
	CountReviewedSince(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, since time.Time) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID) error
	ReplaceAllByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, words []*model.Word) error
	CheckTermExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, term string, excludeWordID *uuid.UUID) (bool, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"tenant_id", word.TenantID.String(),
			"term", word.Term,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, wordID uuid.UUID) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := db.WithContext(ctx).Where("tenant_id = ? AND word_id = ?", tenantID, wordID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by ID in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	result := db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("word_id ASC").Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words by tenant in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByTenant: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) FindDueByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, now time.Time, limit int) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	// 期限超過が大きい順。同時刻はWordID昇順で決定的に並べる。
	result := db.WithContext(ctx).
		Where("tenant_id = ? AND srs_next_review_at <= ?", tenantID, now).
		Order("srs_next_review_at ASC, word_id ASC").
		Limit(limit).
		Find(&words)
	if result.Error != nil {
		logger.Error("Error finding due words in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindDueByTenant: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) CountReviewedSince(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, since time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Word{}).
		Where("tenant_id = ? AND last_reviewed_at >= ?", tenantID, since).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting reviewed words in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return 0, fmt.Errorf("gormWordRepository.CountReviewedSince: %w", result.Error)
	}
	return count, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("tenant_id = ? AND word_id = ?", tenantID, wordID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, tenantID, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("tenant_id = ?", tenantID).Delete(&model.Word{}, wordID)
	if result.Error != nil {
		logger.Error("Error deleting word in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReplaceAllByTenant はテナントの単語コレクション全体をマージ結果で置き換えます。
// 論理削除済みの行も含めて物理削除してから入れ直すため、必ずトランザクション内で呼ぶこと。
// CreatedAt/UpdatedAtはマージ結果の値をそのまま保存します（LWWの根拠になるため上書き禁止）。
func (r *gormWordRepository) ReplaceAllByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, words []*model.Word) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Unscoped().Where("tenant_id = ?", tenantID).Delete(&model.Word{})
	if result.Error != nil {
		logger.Error("Error clearing words for replace in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return fmt.Errorf("gormWordRepository.ReplaceAllByTenant: %w", result.Error)
	}

	if len(words) == 0 {
		return nil
	}

	result = tx.WithContext(ctx).CreateInBatches(words, 200)
	if result.Error != nil {
		logger.Error("Error inserting merged words in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"count", len(words),
		)
		return fmt.Errorf("gormWordRepository.ReplaceAllByTenant: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) CheckTermExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, term string, excludeWordID *uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Word{}).Where("tenant_id = ? AND term = ?", tenantID, term)
	if excludeWordID != nil {
		query = query.Where("word_id != ?", *excludeWordID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking term existence in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"term", term,
		)
		return false, fmt.Errorf("gormWordRepository.CheckTermExists: %w", result.Error)
	}
	return count > 0, nil
}
