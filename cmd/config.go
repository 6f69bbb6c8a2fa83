package cmd

import (
	"fmt"
	"time"
)

// RelayPostgres makes live events travel through Postgres NOTIFY so that every
// replica reaches its own websocket sessions.
const RelayPostgres = "postgres"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TokenSecret string
	TokenTTL    time.Duration

	SelfAcceptRequiresVerification bool
	ExposeErrorDetails             bool

	// RealtimeRelay is empty for a single instance or RelayPostgres.
	RealtimeRelay string
	SweepSchedule string
	LogLevel      string
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}
	if c.DBHost == "" || c.DBName == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("AUTH_TOKEN_SECRET is required")
	}
	if c.RealtimeRelay != "" && c.RealtimeRelay != RelayPostgres {
		return fmt.Errorf("REALTIME_RELAY must be empty or %q, got %q", RelayPostgres, c.RealtimeRelay)
	}
	return nil
}
