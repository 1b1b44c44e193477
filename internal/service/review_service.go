package service

import (
	"context"
	"errors"
	"time"

	"go_5_vocab_sync/internal/config"
	"go_5_vocab_sync/internal/middleware"
	"go_5_vocab_sync/internal/model"
	"go_5_vocab_sync/internal/repository"
	"go_5_vocab_sync/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	GetReviewWords(ctx context.Context, tenantID uuid.UUID) ([]*model.ReviewWordResponse, error)
	GetDailyReview(ctx context.Context, tenantID uuid.UUID) (*model.DailyReviewInfo, error)
	SubmitReview(ctx context.Context, tenantID, wordID uuid.UUID, rating int) (*model.Word, error)
}

type reviewService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	cfg      *config.Config
}

func NewReviewService(db *gorm.DB, wordRepo repository.WordRepository, cfg *config.Config) ReviewService {
	return &reviewService{
		db:       db,
		wordRepo: wordRepo,
		cfg:      cfg,
	}
}

func (s *reviewService) GetReviewWords(ctx context.Context, tenantID uuid.UUID) ([]*model.ReviewWordResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	words, err := s.wordRepo.FindDueByTenant(ctx, s.db, tenantID, time.Now(), s.cfg.App.ReviewLimit)
	if err != nil {
		logger.Error("Failed to find due words from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習単語の取得に失敗しました。", "", err)
	}

	responses := make([]*model.ReviewWordResponse, 0, len(words))
	for _, w := range words {
		responses = append(responses, &model.ReviewWordResponse{
			WordID:       w.WordID,
			Term:         w.Term,
			Translation:  w.Translation,
			NextReviewAt: w.Scheduling.NextReviewAt,
		})
	}

	logger.Info("Successfully retrieved review words", "count", len(responses))
	return responses, nil
}

// GetDailyReview は「今日の復習」情報（対象ID一覧・件数・進捗率）を都度導出して返します。
func (s *reviewService) GetDailyReview(ctx context.Context, tenantID uuid.UUID) (*model.DailyReviewInfo, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)
	now := time.Now()

	words, err := s.wordRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Failed to find words for daily review", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語一覧の取得に失敗しました。", "", err)
	}

	// 進捗率の分子は「今日すでに復習した件数」
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reviewedToday, err := s.wordRepo.CountReviewedSince(ctx, s.db, tenantID, startOfDay)
	if err != nil {
		logger.Error("Failed to count reviewed words for daily review", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "本日の復習済み件数の取得に失敗しました。", "", err)
	}

	info, err := srs.ComputeDailyReview(words, now, s.cfg.App.DailyGoal, int(reviewedToday))
	if err != nil {
		return nil, err
	}

	logger.Info("Daily review computed", "due_count", info.DueCount, "progress", info.Progress)
	return info, nil
}

// SubmitReview は復習結果(rating 0〜5)を反映し、次のスケジュールを計算して保存します。
func (s *reviewService) SubmitReview(ctx context.Context, tenantID, wordID uuid.UUID, rating int) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "word_id", wordID)
	var reviewedWord *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.wordRepo.FindByID(ctx, tx, tenantID, wordID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Word not found for review")
				return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error finding word in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}

		now := time.Now()
		nextState, err := srs.NextState(word.Scheduling, rating, now, srs.Config{
			EasyBonus:        s.cfg.App.EasyBonus,
			IntervalModifier: s.cfg.App.IntervalModifier,
		})
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"srs_interval_days":    nextState.IntervalDays,
			"srs_repetition_count": nextState.RepetitionCount,
			"srs_ease_factor":      nextState.EaseFactor,
			"srs_next_review_at":   nextState.NextReviewAt,
			"last_reviewed_at":     now,
		}
		if err := s.wordRepo.Update(ctx, tx, tenantID, wordID, updates); err != nil {
			logger.Error("Error updating scheduling state in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習結果の保存に失敗しました。", "", err)
		}

		word.Scheduling = nextState
		word.LastReviewedAt = &now
		reviewedWord = word
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Review submitted",
		"rating", rating,
		"interval_days", reviewedWord.Scheduling.IntervalDays,
		"next_review_at", reviewedWord.Scheduling.NextReviewAt,
	)
	return reviewedWord, nil
}
