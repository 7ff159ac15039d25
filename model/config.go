package model

// Config is read from config.toml at startup.
type Config struct {
	Basedir             string
	CookieSecret        string
	Mode                string
	Port                int
	RegistrationAllowed bool
	ReportFooter        string
	Servers             map[string]server
}

type server struct {
	Database   string
	DBName     string
	DBUser     string
	DBPassword string
	DBHost     string
	DBLogger   string
}
