package config

import "time"

// アプリケーション情報
const (
	AppName    = "VocabSync"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultAppReviewLimit   = 20
	DefaultDailyGoal        = 20
	DefaultEasyBonus        = 1.3
	DefaultIntervalModifier = 1.0
	DefaultAuthEnabled      = true
	DefaultAccessTokenTTL   = 24 * time.Hour
	DefaultMailerType       = "log"
)
