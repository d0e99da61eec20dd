package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Index     IndexConfig     `mapstructure:"index"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatasetConfig 資料集設定：兩張扁平表（評分語料與詳細查詢表）
type DatasetConfig struct {
	CorpusPath   string        `mapstructure:"corpus_path"`
	LookupPath   string        `mapstructure:"lookup_path"`
	CorpusURL    string        `mapstructure:"corpus_url"`    // 本地檔不存在時的遠端下載來源（可留空）
	LookupURL    string        `mapstructure:"lookup_url"`    // 同上
	MaxRows      int           `mapstructure:"max_rows"`      // 0 表示不限制
	SnapshotPath string        `mapstructure:"snapshot_path"` // 已建索引的快照檔（可留空停用）
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// IndexConfig 詞彙加權索引設定
type IndexConfig struct {
	MinDocFreq   int `mapstructure:"min_doc_freq"`
	MaxVocabSize int `mapstructure:"max_vocab_size"`
}

// RecommendConfig 推薦服務設定
type RecommendConfig struct {
	TopN       int           `mapstructure:"top_n"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// CacheConfig 會話儲存設定；啟用時使用 Redis，否則退回記憶體儲存
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（缺檔時沿用環境變數與預設值）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("dataset.corpus_path", "DATASET_CORPUS_PATH")
	viper.BindEnv("dataset.lookup_path", "DATASET_LOOKUP_PATH")
	viper.BindEnv("dataset.corpus_url", "DATASET_CORPUS_URL")
	viper.BindEnv("dataset.lookup_url", "DATASET_LOOKUP_URL")
	viper.BindEnv("dataset.snapshot_path", "DATASET_SNAPSHOT_PATH")
	viper.BindEnv("index.min_doc_freq", "INDEX_MIN_DOC_FREQ")
	viper.BindEnv("index.max_vocab_size", "INDEX_MAX_VOCAB_SIZE")
	viper.BindEnv("recommend.top_n", "RECOMMEND_TOP_N")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-recommender")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 資料集設定
	viper.SetDefault("dataset.corpus_path", "data/processed_recipes.csv")
	viper.SetDefault("dataset.lookup_path", "data/recipes_lookup.csv")
	viper.SetDefault("dataset.corpus_url", "")
	viper.SetDefault("dataset.lookup_url", "")
	viper.SetDefault("dataset.max_rows", 50000)
	viper.SetDefault("dataset.snapshot_path", "")
	viper.SetDefault("dataset.fetch_timeout", "120s")

	// 索引設定
	viper.SetDefault("index.min_doc_freq", 2)
	viper.SetDefault("index.max_vocab_size", 50000)

	// 推薦設定
	viper.SetDefault("recommend.top_n", 4)
	viper.SetDefault("recommend.session_ttl", "30m")

	// 會話儲存設定
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 日誌設定
	viper.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證資料集設定
	if config.Dataset.CorpusPath == "" {
		return fmt.Errorf("dataset corpus path is required")
	}
	if config.Dataset.LookupPath == "" {
		return fmt.Errorf("dataset lookup path is required")
	}

	// 驗證索引設定
	if config.Index.MinDocFreq < 1 {
		return fmt.Errorf("invalid index min doc freq")
	}
	if config.Index.MaxVocabSize <= 0 {
		return fmt.Errorf("invalid index max vocab size")
	}

	// 驗證推薦設定
	if config.Recommend.TopN <= 0 {
		return fmt.Errorf("invalid recommend top n")
	}
	if config.Recommend.SessionTTL <= 0 {
		return fmt.Errorf("invalid recommend session ttl")
	}

	// 驗證會話儲存設定
	if config.Cache.Enabled && config.Cache.RedisAddr == "" {
		return fmt.Errorf("cache redis addr is required when cache is enabled")
	}

	return nil
}
