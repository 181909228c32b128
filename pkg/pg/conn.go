package pg

import (
	"database/sql"
	"fmt"
	"strings"
)

const defaultSSLMode = "disable"

// Config addresses one Postgres pool. SSLMode and ConnectTimeout are passed to
// libpq unchanged; managed instances usually need "require".
type Config struct {
	User           string `env:"USER"`
	Host           string `env:"HOST"`
	Port           string `env:"PORT"`
	Password       string `env:"PASSWORD"`
	Database       string `env:"DBNAME"`
	SSLMode        string `env:"SSLMODE"`
	ConnectTimeout int    `env:"CONNECT_TIMEOUT"`
}

func dsn(config Config) string {
	sslMode := strings.TrimSpace(config.SSLMode)
	if sslMode == "" {
		sslMode = defaultSSLMode
	}
	parts := []string{
		"host=" + config.Host,
		"user=" + config.User,
		"password=" + config.Password,
		"dbname=" + config.Database,
		"port=" + config.Port,
		"sslmode=" + sslMode,
	}
	if config.ConnectTimeout > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", config.ConnectTimeout))
	}
	return strings.Join(parts, " ")
}

// newSqlConnection opens the plain database/sql handle goose migrates with.
func newSqlConnection(config Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn(config))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
