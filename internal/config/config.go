package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"PestPro-App/internal/domain/service"
	"PestPro-App/internal/infrastructure/atlas"
)

// ZIP対応表の取得元
const (
	ZipSourceFile      = "file"
	ZipSourceHTTP      = "http"
	ZipSourcePostgres  = "postgres"
	ZipSourceSupabase  = "supabase"
	ZipSourceFirestore = "firestore"
)

// セッションの保存先
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config アプリケーション設定
type Config struct {
	Port        string
	AtlasURL    string
	HTTPTimeout time.Duration

	ZipSource    string
	ZipTablePath string
	ZipTableURL  string

	DatabaseURL        string
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseDBPassword string

	FirestoreProjectID string
	CredentialsFile    string

	SessionStore string
	SessionTTL   time.Duration
	RedisHost    string
	RedisPort    string
	RedisPass    string
	RedisDB      int

	CORSAllowOrigins []string
	CentroidMode     service.CentroidMode
	Members          []string
}

// Load .envファイル（存在すれば）と環境変数から設定を読み込む
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ .env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv 環境変数のみから設定を組み立てる
func FromEnv() (*Config, error) {
	centroidMode, err := service.ParseCentroidMode(getEnv("CENTROID_MODE", string(service.CentroidFirstRing)))
	if err != nil {
		return nil, err
	}

	timeoutSec, err := getEnvInt("HTTP_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	ttlMin, err := getEnvInt("SESSION_TTL_MINUTES", 120)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AtlasURL:    getEnv("ATLAS_URL", atlas.DefaultAtlasURL),
		HTTPTimeout: time.Duration(timeoutSec) * time.Second,

		ZipSource:    strings.ToLower(getEnv("ZIP_SOURCE", ZipSourceFile)),
		ZipTablePath: getEnv("ZIP_TABLE_PATH", "data/zip_counties.json"),
		ZipTableURL:  os.Getenv("ZIP_TABLE_URL"),

		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseDBPassword: os.Getenv("SUPABASE_DB_PASSWORD"),

		FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
		CredentialsFile:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		SessionStore: strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		SessionTTL:   time.Duration(ttlMin) * time.Minute,
		RedisHost:    getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		RedisDB:      redisDB,

		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		CentroidMode:     centroidMode,
		Members:          splitList(getEnv("MEMBERS", "Member1,Member2,Member3")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 取得元ごとに必要な設定が揃っているか確認する
func (c *Config) Validate() error {
	switch c.ZipSource {
	case ZipSourceFile:
		if c.ZipTablePath == "" {
			return fmt.Errorf("ZIP_SOURCE=file にはZIP_TABLE_PATHが必要です")
		}
	case ZipSourceHTTP:
		if c.ZipTableURL == "" {
			return fmt.Errorf("ZIP_SOURCE=http にはZIP_TABLE_URLが必要です")
		}
	case ZipSourcePostgres:
		if c.DatabaseURL == "" && (c.SupabaseURL == "" || c.SupabaseDBPassword == "") {
			return fmt.Errorf("ZIP_SOURCE=postgres にはDATABASE_URL、またはSUPABASE_URLとSUPABASE_DB_PASSWORDが必要です")
		}
	case ZipSourceSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return fmt.Errorf("ZIP_SOURCE=supabase にはSUPABASE_URLとSUPABASE_ANON_KEYが必要です")
		}
	case ZipSourceFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("ZIP_SOURCE=firestore にはFIRESTORE_PROJECT_IDが必要です")
		}
	default:
		return fmt.Errorf("未対応のZIP_SOURCEです: %s", c.ZipSource)
	}

	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("未対応のSESSION_STOREです: %s", c.SessionStore)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDSは正の整数である必要があります")
	}
	return nil
}

// getEnv 環境変数を取得し、未設定の場合はデフォルト値を返す
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%sは整数である必要があります: %q", key, value)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
