package config

const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./library.db"

	// DefaultCORSOrigin is the frontend allowed to call the API when none is configured
	DefaultCORSOrigin = "https://tu-app.vercel.app"
)
