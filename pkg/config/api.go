package config

// APIConfig holds runtime configuration for the accounts service.
type APIConfig struct {
	Environment        string `yaml:"environment"`
	Addr               string `yaml:"addr"`
	DatabaseURL        string `yaml:"database_url"`
	MigrationsDir      string `yaml:"migrations_dir"`
	MigrateOnStart     bool   `yaml:"migrate_on_start"`
	BcryptCost         int    `yaml:"bcrypt_cost"`
	LogLevel           string `yaml:"log_level"`
	SignupRateLimit    int    `yaml:"signup_rate_limit"`
	RateLimitRedisAddr string `yaml:"rate_limit_redis_addr"`
	RateLimitRedisPass string `yaml:"rate_limit_redis_password"`
	RateLimitRedisDB   int    `yaml:"rate_limit_redis_db"`
}

// LoadAPIConfig constructs an APIConfig from environment variables.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("API_ADDR", ":4000"),
		DatabaseURL:        GetString("DATABASE_URL", "postgres://accounts:accounts@db:5432/accounts?sslmode=disable"),
		MigrationsDir:      GetString("DB_MIGRATIONS_DIR", ""),
		MigrateOnStart:     GetBool("MIGRATE_ON_START", true),
		BcryptCost:         GetInt("BCRYPT_COST", 12),
		LogLevel:           GetString("LOG_LEVEL", "info"),
		SignupRateLimit:    GetInt("RATE_LIMIT_SIGNUP", 5),
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
}
