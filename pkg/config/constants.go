package config

const EnvPrefix = "LITTLELEMON"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv     = "LITTLELEMON_APP_ENV"
	EnvPort       = "LITTLELEMON_APP_PORT"
	EnvDBDSN      = "LITTLELEMON_DB_DSN"
	EnvDBDriver   = "LITTLELEMON_DB_DRIVER"
	EnvDBHost     = "LITTLELEMON_DB_HOST"
	EnvDBUser     = "LITTLELEMON_DB_USER"
	EnvDBName     = "LITTLELEMON_DB_NAME"
	EnvRedisURL   = "LITTLELEMON_REDIS_URL"
	EnvJWTSecret  = "LITTLELEMON_JWT_SECRET"
	EnvJWTIssuer  = "LITTLELEMON_JWT_ISSUER"
	EnvJWTExpMins = "LITTLELEMON_JWT_EXPIRATION_MINUTES"
	EnvCORS       = "LITTLELEMON_CORS_ALLOWED_ORIGINS"
	EnvThrottle   = "LITTLELEMON_THROTTLE_USER_LIMIT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
