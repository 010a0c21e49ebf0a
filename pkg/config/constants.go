package config

// EnvPrefix scopes every environment variable this service reads.
const EnvPrefix = "seedkit"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced from validation messages and tests.
const (
	EnvAppEnv              = "SEEDKIT_APP_ENV"
	EnvAppPort             = "SEEDKIT_APP_PORT"
	EnvAdminAccessCode     = "SEEDKIT_ADMIN_ACCESS_CODE"
	EnvStoreDriver         = "SEEDKIT_STORE_DRIVER"
	EnvStoreSQLitePath     = "SEEDKIT_STORE_SQLITE_PATH"
	EnvDBDSN               = "SEEDKIT_DB_DSN"
	EnvRedisURL            = "SEEDKIT_REDIS_URL"
	EnvRedisAddr           = "SEEDKIT_REDIS_ADDR"
	EnvStorageMaxMB        = "SEEDKIT_STORAGE_MAX_MB"
	EnvStorageWarnPercent  = "SEEDKIT_STORAGE_WARN_PERCENT"
	EnvStorageBlockPercent = "SEEDKIT_STORAGE_BLOCK_PERCENT"
	EnvMediaImageMaxWidth  = "SEEDKIT_MEDIA_IMAGE_MAX_WIDTH"
	EnvMediaImageQuality   = "SEEDKIT_MEDIA_IMAGE_QUALITY"
)
