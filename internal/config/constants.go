package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8501
	defaultEnv        = "development"

	StoreDriverXLSX   = "xlsx"
	StoreDriverMySQL  = "mysql"
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	defaultStoreDriver = StoreDriverXLSX
	defaultSheetName   = "wine_ratings"
	defaultWorkbook    = "wine_ratings.xlsx"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "wine_tasting"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "wine_tasting"

	SessionDriverMemory = "memory"
	SessionDriverRedis  = "redis"

	defaultSessionDriver = SessionDriverMemory
	defaultSessionTTL    = 12 * time.Hour
	defaultSessionCookie = "tasting_sid"

	AIProviderGemini           = "gemini"
	AIProviderOpenAI           = "openai"
	AIProviderAnthropic        = "anthropic"
	AIProviderOpenAICompatible = "openai-compatible"

	defaultAIProvider        = AIProviderGemini
	defaultAITimeout         = 30 * time.Second
	defaultAIMaxOutputTokens = 600

	// EnvAIAPIKey overrides ai.api_key.
	EnvAIAPIKey = "TASTING_AI_API_KEY"
	// EnvGeminiAPIKey is read when ai.api_key and TASTING_AI_API_KEY are both empty.
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// DefaultWines is the wine list offered by the submission form.
var DefaultWines = []string{"Pinot Gris", "Gerwurtzraminer", "Riesling", "Dolcetto", "Cremant"}
