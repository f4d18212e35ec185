package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	Timezone       string                `yaml:"timezone"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	Store          StoreConfig           `yaml:"store"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Mongo          MongoRuntimeConfig    `yaml:"mongo"`
	Session        SessionConfig         `yaml:"session"`
	AI             AIConfig              `yaml:"ai"`
	Wines          []string              `yaml:"wines"`
}

// StoreConfig selects the record sheet backend.
type StoreConfig struct {
	Driver       string `yaml:"driver"` // xlsx | mysql | mongo | memory
	Sheet        string `yaml:"sheet"`
	Workbook     string `yaml:"workbook"`
	RepairHeader bool   `yaml:"repair_header"`
}

type DatabaseRuntimeConfig struct {
	DSN       string            `yaml:"dsn"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type MongoRuntimeConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// SessionConfig controls where summary memos live and how the session cookie is issued.
type SessionConfig struct {
	Driver     string        `yaml:"driver"` // memory | redis
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
}

// AIConfig selects the generative-text provider used for summaries.
type AIConfig struct {
	Provider        string        `yaml:"provider"`
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	Endpoint        string        `yaml:"endpoint"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
	Data string `yaml:"data"`
}

type rawAppConfig struct {
	Port               int               `yaml:"port"`
	Env                string            `yaml:"env"`
	NodeEnv            string            `yaml:"node_env"`
	Timezone           string            `yaml:"timezone"`
	TZ                 string            `yaml:"tz"`
	AllowedOrigins     []string          `yaml:"allowed_origins"`
	CORSAllowedOrigins []string          `yaml:"cors_allowed_origins"`
	Paths              rawPathsConfig    `yaml:"paths"`
	LogDir             string            `yaml:"log_dir"`
	Store              rawStoreConfig    `yaml:"store"`
	SheetName          string            `yaml:"sheet_name"`
	Database           rawDatabaseConfig `yaml:"database"`
	Redis              rawRedisConfig    `yaml:"redis"`
	RedisURL           string            `yaml:"redis_url"`
	Mongo              rawMongoConfig    `yaml:"mongo"`
	Session            rawSessionConfig  `yaml:"session"`
	AI                 rawAIConfig       `yaml:"ai"`
	GeminiAPIKey       string            `yaml:"gemini_api_key"`
	Wines              []string          `yaml:"wines"`
}

type rawPathsConfig struct {
	Logs string `yaml:"logs"`
	Data string `yaml:"data"`
}

type rawStoreConfig struct {
	Driver       string `yaml:"driver"`
	Sheet        string `yaml:"sheet"`
	Workbook     string `yaml:"workbook"`
	RepairHeader *bool  `yaml:"repair_header"`
}

type rawDatabaseConfig struct {
	DSN       string            `yaml:"dsn"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Username  string            `yaml:"username"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	DBName    string            `yaml:"db_name"`
	Charset   string            `yaml:"charset"`
	ParseTime *bool             `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type rawRedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
	TLS      *bool  `yaml:"tls"`
}

type rawMongoConfig struct {
	URI      string `yaml:"uri"`
	URL      string `yaml:"url"`
	Database string `yaml:"database"`
}

type rawSessionConfig struct {
	Driver     string `yaml:"driver"`
	TTL        string `yaml:"ttl"`
	CookieName string `yaml:"cookie_name"`
	Secure     *bool  `yaml:"secure"`
}

type rawAIConfig struct {
	Provider        string `yaml:"provider"`
	Type            string `yaml:"type"`
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	Endpoint        string `yaml:"endpoint"`
	Timeout         string `yaml:"timeout"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}
