package constants

const (
	AppName = "prepometer"
	Version = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultConfigDir is the default location for local state and config
	DefaultConfigDir = "~/.config/prepometer"

	// ChecklistFile and DailyLogFile are the well-known local storage entries.
	// They correspond to the prep_checklist / prep_daily keys the data was
	// historically stored under, so existing exports keep their shape.
	ChecklistFile = "prep_checklist.json"
	DailyLogFile  = "prep_daily.json"

	// KeyringSessionUser is the keyring account name under which the remote
	// session token is cached between runs.
	KeyringSessionUser = "session-token"
)
