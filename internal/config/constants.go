package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./cognicard.db"

	// DefaultPhotoCacheDir is the default directory for cached contact photos
	DefaultPhotoCacheDir = "./photo-cache"
)
