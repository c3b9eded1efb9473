package config

import (
	"time"

	"github.com/spf13/viper"
)

// Connection parameters have no defaults, they need to come from the environment
type Database struct {
	Port     uint16
	Host     string
	User     string
	Password string
	Name     string
	SslMode  string

	// How long to wait for the first ping
	PingTimeout time.Duration

	// How many times a failed ping is repeated. 0 means a single attempt
	PingRetries uint64

	// Maximum interval between ping retries
	PingMaxInterval time.Duration

	// Migrations are applied only if this user is set
	MigrationUser     string
	MigrationPassword string
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("Database.SslMode", "disable")
	v.SetDefault("Database.PingTimeout", "15s")
	v.SetDefault("Database.PingRetries", "0")
	v.SetDefault("Database.PingMaxInterval", "10s")
}
