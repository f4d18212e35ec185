package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath, applies defaults and
// environment overrides, and validates the result.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML content into an AppConfig.
func Parse(content []byte) (*AppConfig, error) {
	cfg := Default()
	raw := rawAppConfig{}
	if len(bytes.TrimSpace(content)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
	}

	if err := applyRawAppConfig(&cfg, raw); err != nil {
		return nil, err
	}
	applyEnvOverrides(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file overrides anything.
func Default() AppConfig {
	cfg := AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Store: StoreConfig{
			Driver:   defaultStoreDriver,
			Sheet:    defaultSheetName,
			Workbook: defaultWorkbook,
		},
		Database: DatabaseRuntimeConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Mongo: MongoRuntimeConfig{
			URI:      defaultMongoURI,
			Database: defaultMongoDatabase,
		},
		Session: SessionConfig{
			Driver:     defaultSessionDriver,
			TTL:        defaultSessionTTL,
			CookieName: defaultSessionCookie,
		},
		AI: AIConfig{
			Provider:        defaultAIProvider,
			Timeout:         defaultAITimeout,
			MaxOutputTokens: defaultAIMaxOutputTokens,
		},
		Wines: append([]string(nil), DefaultWines...),
	}
	return cfg
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.TZ); v != "" {
		cfg.Timezone = v
	}

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeList(raw.AllowedOrigins)
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = normalizeList(raw.CORSAllowedOrigins)
	}

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.Paths.Data); v != "" {
		cfg.Paths.Data = v
	}

	if v := strings.TrimSpace(raw.Store.Driver); v != "" {
		cfg.Store.Driver = v
	}
	if v := strings.TrimSpace(raw.Store.Sheet); v != "" {
		cfg.Store.Sheet = v
	}
	if v := strings.TrimSpace(raw.SheetName); v != "" {
		cfg.Store.Sheet = v
	}
	if v := strings.TrimSpace(raw.Store.Workbook); v != "" {
		cfg.Store.Workbook = v
	}
	if raw.Store.RepairHeader != nil {
		cfg.Store.RepairHeader = *raw.Store.RepairHeader
	}

	cfg.Database = applyRawDatabaseConfig(cfg.Database, raw.Database)
	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw)

	if v := strings.TrimSpace(raw.Mongo.URI); v != "" {
		cfg.Mongo.URI = v
	}
	if v := strings.TrimSpace(raw.Mongo.URL); v != "" {
		cfg.Mongo.URI = v
	}
	if v := strings.TrimSpace(raw.Mongo.Database); v != "" {
		cfg.Mongo.Database = v
	}

	if v := strings.TrimSpace(raw.Session.Driver); v != "" {
		cfg.Session.Driver = v
	}
	if v := strings.TrimSpace(raw.Session.TTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid session.ttl %q: %w", v, err)
		}
		cfg.Session.TTL = d
	}
	if v := strings.TrimSpace(raw.Session.CookieName); v != "" {
		cfg.Session.CookieName = v
	}
	if raw.Session.Secure != nil {
		cfg.Session.Secure = *raw.Session.Secure
	}

	if err := applyRawAIConfig(&cfg.AI, raw); err != nil {
		return err
	}

	if raw.Wines != nil {
		cfg.Wines = normalizeList(raw.Wines)
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Store = normalizeStoreConfig(cfg.Store)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.Session.Driver = strings.ToLower(strings.TrimSpace(cfg.Session.Driver))
	cfg.AI.Provider = normalizeProviderType(cfg.AI.Provider)
	return nil
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawDatabaseConfig) DatabaseRuntimeConfig {
	cfg := current
	if v := strings.TrimSpace(raw.DSN); v != "" {
		cfg.DSN = v
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		cfg.Host = v
	}
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.User); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.Username); v != "" {
		cfg.User = v
	}
	if v := strings.TrimSpace(raw.Password); v != "" {
		cfg.Password = v
	}
	if v := strings.TrimSpace(raw.Name); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.DBName); v != "" {
		cfg.Name = v
	}
	if v := strings.TrimSpace(raw.Charset); v != "" {
		cfg.Charset = v
	}
	if raw.ParseTime != nil {
		cfg.ParseTime = *raw.ParseTime
	}
	if v := strings.TrimSpace(raw.Loc); v != "" {
		cfg.Loc = v
	}
	if raw.Params != nil {
		cfg.Params = copyStringMap(raw.Params)
	}
	return cfg
}

func applyRawRedisConfig(current RedisRuntimeConfig, raw rawAppConfig) RedisRuntimeConfig {
	cfg := current
	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(raw.Redis.Host); v != "" {
		cfg.Host = v
	}
	if raw.Redis.Port != 0 {
		cfg.Port = raw.Redis.Port
	}
	if v := strings.TrimSpace(raw.Redis.Username); v != "" {
		cfg.Username = v
	}
	if v := strings.TrimSpace(raw.Redis.Password); v != "" {
		cfg.Password = v
	}
	if raw.Redis.DB != nil {
		cfg.DB = *raw.Redis.DB
	}
	if raw.Redis.TLS != nil {
		cfg.TLS = *raw.Redis.TLS
	}
	return cfg
}

func applyRawAIConfig(cfg *AIConfig, raw rawAppConfig) error {
	if v := strings.TrimSpace(raw.AI.Provider); v != "" {
		cfg.Provider = v
	}
	if v := strings.TrimSpace(raw.AI.Type); v != "" {
		cfg.Provider = v
	}
	if v := strings.TrimSpace(raw.GeminiAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(raw.AI.APIKey); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(raw.AI.Model); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(raw.AI.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(raw.AI.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ai.timeout %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if raw.AI.MaxOutputTokens != 0 {
		cfg.MaxOutputTokens = raw.AI.MaxOutputTokens
	}
	return nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvAIAPIKey)); v != "" {
		cfg.AI.APIKey = v
		return
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = strings.TrimSpace(os.Getenv(EnvGeminiAPIKey))
	}
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Store.Driver {
	case StoreDriverXLSX, StoreDriverMySQL, StoreDriverMongo, StoreDriverMemory:
	default:
		return fmt.Errorf("invalid store.driver %q, expected xlsx, mysql, mongo or memory", c.Store.Driver)
	}
	if c.Store.Sheet == "" {
		return fmt.Errorf("store.sheet must not be empty")
	}
	if c.Store.Driver == StoreDriverMySQL && (c.Database.Port < 1 || c.Database.Port > 65535) {
		return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
	}
	switch c.Session.Driver {
	case SessionDriverMemory, SessionDriverRedis:
	default:
		return fmt.Errorf("invalid session.driver %q, expected memory or redis", c.Session.Driver)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("invalid session.ttl %s, expected > 0", c.Session.TTL)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	switch c.AI.Provider {
	case AIProviderGemini, AIProviderOpenAI, AIProviderAnthropic, AIProviderOpenAICompatible:
	default:
		return fmt.Errorf("invalid ai.provider %q", c.AI.Provider)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("invalid ai.timeout %s, expected > 0", c.AI.Timeout)
	}
	if len(c.Wines) == 0 {
		return fmt.Errorf("wines must list at least one wine")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

// DataDir is where file-backed stores keep their data.
func (c *AppConfig) DataDir() string {
	if c == nil {
		return ResolveRuntimePath("", "data")
	}
	return ResolveRuntimePath(c.Paths.Data, "data")
}

// WorkbookPath resolves the xlsx workbook against the data directory.
func (c *AppConfig) WorkbookPath() string {
	return ResolveAgainst(c.DataDir(), c.Store.Workbook)
}
