package constants

import "time"

const (
	AppName            = "weekly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/weekly/weekly.db"
	Version            = "v0.3.0"

	// StorageKey is the key the week dataset is persisted under.
	StorageKey = "weekly-routine-data"

	// Preference keys stored next to the dataset
	PrefLastDay    = "last-day"
	PrefLanguage   = "preferredLanguage"
	PrefPermission = "notification-permission"

	// DebounceDelay is the quiet period before a saved dataset is written.
	DebounceDelay = 300 * time.Millisecond

	// ReconcileInterval is how often the scheduler re-derives armed notifications.
	ReconcileInterval = time.Minute

	// Backup constants
	MaxBackups         = 14
	BackupDirName      = "backups"
	BackupFilePrefix   = "weekly-"
	BackupFileSuffix   = ".json"
	ExportFilePrefix   = "weekly-routine-backup-"
	RemoteBackupScheme = "s3://"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "weekly-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.weekly"
	TrayExecutablePrefix   = "weekly-tray"
	NotificationIcon       = "assets/icon-192.png"
	InboxCapacity          = 32

	// Environment variables
	EnvConnection  = "WEEKLY_DB_CONNECTION"
	EnvLanguage    = "WEEKLY_LANG"
	EnvMinioHost   = "MINIO_ENDPOINT"
	EnvMinioKey    = "MINIO_ACCESS_KEY"
	EnvMinioSecret = "MINIO_SECRET_KEY"
	EnvMinioSSL    = "MINIO_USE_SSL"

	// Redis backend
	RedisKeyPrefix = "weekly:"
)
