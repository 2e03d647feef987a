package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	GoogleClientID     string // Google OAuth
	GoogleClientSecret string
	GoogleRedirectURL  string

	RazorpayKeyID     string // 決済ゲートウェイ
	RazorpayKeySecret string

	GoEnv string // dev/prod
	FEURL string // フロントURL（OAuthリダイレクトとCORSで使う）
}

// Loadは環境変数から読み込む（デフォルトあり、JWT_SECRETだけ必須）。
func Load() (Config, error) {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GO_ENV", "dev")
	viper.SetDefault("FE_URL", "http://localhost:5173")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "serene")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.AutomaticEnv()

	cfg := Config{
		Port: viper.GetString("PORT"),

		JWTSecret: viper.GetString("JWT_SECRET"),

		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),

		RazorpayKeyID:     viper.GetString("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: viper.GetString("RAZORPAY_KEY_SECRET"),

		GoEnv: viper.GetString("GO_ENV"),
		FEURL: viper.GetString("FE_URL"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
