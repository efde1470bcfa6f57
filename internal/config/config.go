package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORS_ORIGINS未指定時に許可するフロントのオリジン
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"https://desco-frontend.onrender.com",
}

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（5000）

	DatabaseURL      string // あれば最優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	JWTSecret     string        // JWT署名シークレット
	UserTokenTTL  time.Duration // 一般ユーザー（2h）
	AdminTokenTTL time.Duration // 管理者（6h）
	BcryptCost    int

	// 初期管理者（空なら作らない）
	AdminEmail    string
	AdminPassword string
	AdminName     string

	SupabaseURL   string
	SupabaseKey   string
	ProductBucket string
	LandingBucket string
	AboutBucket   string

	RedisAddr     string // 空ならキャッシュ無効
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	CORSOrigins   []string
	AuthRateLimit float64 // register/loginのIPごとの秒間リクエスト数
	MaxUploadMB   int64

	GoEnv    string // dev/prod
	LogLevel string
}

// Loadは環境変数
func Load() (Config, error) {
	var err error
	cfg := Config{
		Port: getenv("PORT", "5000"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "desco"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getenv("ADMIN_NAME", "Administrator"),

		SupabaseURL:   strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		ProductBucket: getenv("PRODUCT_BUCKET", "desco-products"),
		LandingBucket: getenv("LANDING_BUCKET", "desco-landing"),
		AboutBucket:   getenv("ABOUT_BUCKET", "desco-about"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	if cfg.PostgresPort, err = atoiDefault("POSTGRES_PORT", 5432); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = atoiDefault("BCRYPT_COST", 10); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = atoiDefault("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	maxMB, err := atoiDefault("MAX_UPLOAD_MB", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxUploadMB = int64(maxMB)

	if cfg.UserTokenTTL, err = durationDefault("USER_TOKEN_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.AdminTokenTTL, err = durationDefault("ADMIN_TOKEN_TTL", 6*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = durationDefault("CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}

	cfg.AuthRateLimit = 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("AUTH_RATE_LIMIT must be number: %w", err)
		}
		cfg.AuthRateLimit = f
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.UserTokenTTL <= 0 || cfg.AdminTokenTTL <= 0 {
		return Config{}, fmt.Errorf("token ttl must be positive")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return Config{}, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if cfg.MaxUploadMB <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}

	return cfg, nil
}

// DSNはgorm/pgxに渡す接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// AllowedOriginsはCORSとwebsocketのOriginチェックで共有する
func (c Config) AllowedOrigins() []string {
	if len(c.CORSOrigins) == 0 {
		return append([]string(nil), defaultOrigins...)
	}
	return c.CORSOrigins
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod" || c.GoEnv == "production"
}

func (c Config) StorageEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
