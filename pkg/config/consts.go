package config

const (
	EnvPrefix = "SPEEDYVAN"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "SPEEDYVAN_APP_ENV"
	EnvPort     = "SPEEDYVAN_APP_PORT"
	EnvDBDSN    = "SPEEDYVAN_DB_DSN"
	EnvRedisURL = "SPEEDYVAN_REDIS_URL"
)
