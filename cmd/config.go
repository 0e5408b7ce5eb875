package cmd

import "fmt"

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	DeepSeekAPIKey  string
	DeepSeekBaseURL string
}

// DSN builds the postgres connection string from the DB settings.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// PersistenceEnabled reports whether a postgres mirror is configured. With no
// DB host the service runs purely in memory.
func (c Config) PersistenceEnabled() bool {
	return c.DBHost != ""
}
