package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty-safe.
const EnvPrefix = "zawadi"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	SnapshotBackendMemory = "memory"
	SnapshotBackendFile   = "file"
	SnapshotBackendRedis  = "redis"
)

const (
	EnvAppEnv           = "ZAWADI_APP_ENV"
	EnvPort             = "ZAWADI_APP_PORT"
	EnvLogLevel         = "ZAWADI_LOG_LEVEL"
	EnvRedisURL         = "ZAWADI_REDIS_URL"
	EnvSnapshotBackend  = "ZAWADI_SNAPSHOT_BACKEND"
	EnvSnapshotFilePath = "ZAWADI_SNAPSHOT_FILE_PATH"
	EnvSnapshotTTL      = "ZAWADI_SNAPSHOT_TTL"
	EnvCatalogBaseURL   = "ZAWADI_CATALOG_BASE_URL"
	EnvOrdersBaseURL    = "ZAWADI_ORDERS_BASE_URL"
)
