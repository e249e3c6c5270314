package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// BackupTimestampFormat names backup snapshots (minute precision)
	BackupTimestampFormat = "20060102-1504"

	// BackupTimestampFormatSeconds is used when a minute-precision name is taken
	BackupTimestampFormatSeconds = "20060102-150405"
)
