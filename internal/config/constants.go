package config

const (
	// DefaultDatabasePath is the default path for the SQLite database.
	DefaultDatabasePath = "./onboard.db"
)
