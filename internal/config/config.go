package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		Name        string `mapstructure:"name"`
		FrontendURL string `mapstructure:"frontend_url"`
		// 1回のレビュー取得で返す単語数の上限
		ReviewLimit int `mapstructure:"review_limit"`
		// 1日のレビュー目標数 (進捗率の分母)
		DailyGoal int `mapstructure:"daily_goal"`
		// 評価5のときに間隔へ掛けるボーナス係数
		EasyBonus float64 `mapstructure:"easy_bonus"`
		// 全間隔に掛ける調整係数
		IntervalModifier float64 `mapstructure:"interval_modifier"`
	} `mapstructure:"app"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	JWT struct {
		SecretKey      string        `mapstructure:"secret_key"`
		AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	} `mapstructure:"jwt"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Mailer struct {
		Type string `mapstructure:"type"` // "log", "smtp", "ses"
	} `mapstructure:"mailer"`
	SMTP SMTPConfig `mapstructure:"smtp"`
	SES  SESConfig  `mapstructure:"ses"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // "iam_role" or "static_credentials"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数を自動で読み込む (例: APP_DATABASE_URL)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Warn("Config file not found. Using defaults and environment variables.")
		} else {
			slog.Error("Error reading config file", "error", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		slog.Error("Error unmarshalling config", "error", err)
		return err
	}

	applyDefaults()

	slog.Info("Config loaded successfully",
		"server_port", Cfg.Server.Port,
		"review_limit", Cfg.App.ReviewLimit,
		"daily_goal", Cfg.App.DailyGoal,
		"auth_enabled", Cfg.Auth.Enabled,
		"mailer_type", Cfg.Mailer.Type,
	)
	return nil
}

// applyDefaults は未設定・不正な値にデフォルトを適用します。
func applyDefaults() {
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.Name == "" {
		Cfg.App.Name = AppName
	}
	if Cfg.App.ReviewLimit <= 0 {
		Cfg.App.ReviewLimit = DefaultAppReviewLimit
	}
	if Cfg.App.DailyGoal <= 0 {
		Cfg.App.DailyGoal = DefaultDailyGoal
	}
	// 間隔係数は 0 以下を不正とみなしデフォルトに戻す
	if Cfg.App.EasyBonus <= 0 {
		Cfg.App.EasyBonus = DefaultEasyBonus
	}
	if Cfg.App.IntervalModifier <= 0 {
		Cfg.App.IntervalModifier = DefaultIntervalModifier
	}
	if !viper.IsSet("auth.enabled") {
		Cfg.Auth.Enabled = DefaultAuthEnabled
	}
	if Cfg.JWT.AccessTokenTTL <= 0 {
		Cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if Cfg.Auth.Enabled && Cfg.JWT.SecretKey == "" {
		slog.Warn("JWT secret key is not set while auth is enabled.")
	}
	if Cfg.Mailer.Type == "" {
		Cfg.Mailer.Type = DefaultMailerType
	}
	if Cfg.Database.URL == "" {
		slog.Warn("Database URL is not set in config.")
	}
}
