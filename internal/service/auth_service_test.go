package service

import (
	"context"
	"testing"
	"time"

	"go_5_vocab_sync/internal/config"
	"go_5_vocab_sync/internal/model"
	"go_5_vocab_sync/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "VocabSyncTest"
	cfg.JWT.SecretKey = "test-secret-key"
	cfg.JWT.AccessTokenTTL = time.Hour
	return cfg
}

func Test_authService_RegisterTenant(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cfg := authTestConfig()

	req := &model.RegisterRequest{
		Name:     "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	t.Run("正常系: 登録成功で即時有効", func(t *testing.T) {
		mockTenantRepo := new(mocks.TenantRepository)
		mockTenantRepo.On("FindByEmail", ctx, mock.Anything, req.Email).
			Return(nil, model.ErrNotFound).Once()
		mockTenantRepo.On("FindByName", ctx, mock.Anything, req.Name).
			Return(nil, model.ErrNotFound).Once()
		mockTenantRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(tenant *model.Tenant) bool {
			// パスワードは平文で保存されないこと
			return tenant.Name == req.Name &&
				tenant.Email == req.Email &&
				tenant.PasswordHash != req.Password &&
				tenant.IsActive
		})).Return(nil).Once()

		svc := NewAuthService(db, mockTenantRepo, &LogMailer{}, cfg)
		tenant, err := svc.RegisterTenant(ctx, req)

		require.NoError(t, err)
		assert.True(t, tenant.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte(req.Password)))
		mockTenantRepo.AssertExpectations(t)
	})

	t.Run("異常系: メールアドレス重複", func(t *testing.T) {
		mockTenantRepo := new(mocks.TenantRepository)
		mockTenantRepo.On("FindByEmail", ctx, mock.Anything, req.Email).
			Return(&model.Tenant{TenantID: uuid.New(), Email: req.Email}, nil).Once()

		svc := NewAuthService(db, mockTenantRepo, &LogMailer{}, cfg)
		_, err := svc.RegisterTenant(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		mockTenantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: ユーザ名重複", func(t *testing.T) {
		mockTenantRepo := new(mocks.TenantRepository)
		mockTenantRepo.On("FindByEmail", ctx, mock.Anything, req.Email).
			Return(nil, model.ErrNotFound).Once()
		mockTenantRepo.On("FindByName", ctx, mock.Anything, req.Name).
			Return(&model.Tenant{TenantID: uuid.New(), Name: req.Name}, nil).Once()

		svc := NewAuthService(db, mockTenantRepo, &LogMailer{}, cfg)
		_, err := svc.RegisterTenant(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

func Test_authService_Login(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	cfg := authTestConfig()

	tenantID := uuid.New()
	password := "password123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	activeTenant := &model.Tenant{
		TenantID:     tenantID,
		Name:         "testuser",
		Email:        "test@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	t.Run("正常系: ログイン成功でJWTのsubjectがテナントID", func(t *testing.T) {
		mockTenantRepo := new(mocks.TenantRepository)
		mockTenantRepo.On("FindByEmail", ctx, db, activeTenant.Email).
			Return(activeTenant, nil).Once()

		svc := NewAuthService(db, mockTenantRepo, &LogMailer{}, cfg)
		resp, err := svc.Login(ctx, &model.LoginRequest{Email: activeTenant.Email, Password: password})

		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.SecretKey), nil
		})
		require.NoError(t, err)
		sub, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, tenantID.String(), sub)
	})

	t.Run("異常系: パスワード不一致", func(t *testing.T) {
		mockTenantRepo := new(mocks.TenantRepository)
		mockTenantRepo.On("FindByEmail", ctx, db, activeTenant.Email).
			Return(activeTenant, nil).Once()

		svc := NewAuthService(db, mockTenantRepo, &LogMailer{}, cfg)
		_, err := svc.Login(ctx, &model.LoginRequest{Email: activeTenant.Email, Password: "wrong"})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("異常系: 存在しないユーザーでも同じエラーメッセージ", func(t *testing.T) {
		mockTenantRepo := new(mocks.TenantRepository)
		mockTenantRepo.On("FindByEmail", ctx, db, "nobody@example.com").
			Return(nil, model.ErrNotFound).Once()

		svc := NewAuthService(db, mockTenantRepo, &LogMailer{}, cfg)
		_, err := svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: password})

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "AUTHENTICATION_FAILED", appErr.Detail.Code)
	})

	t.Run("異常系: 無効化されたアカウント", func(t *testing.T) {
		inactive := *activeTenant
		inactive.IsActive = false

		mockTenantRepo := new(mocks.TenantRepository)
		mockTenantRepo.On("FindByEmail", ctx, db, activeTenant.Email).
			Return(&inactive, nil).Once()

		svc := NewAuthService(db, mockTenantRepo, &LogMailer{}, cfg)
		_, err := svc.Login(ctx, &model.LoginRequest{Email: activeTenant.Email, Password: password})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}
