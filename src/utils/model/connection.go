package model

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tweets-stream/reporter/src/utils/config"
	l "github.com/tweets-stream/reporter/src/utils/logger"
	"github.com/tweets-stream/reporter/src/utils/model/sql_migrations"
	"github.com/tweets-stream/reporter/src/utils/task"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Values are quoted, otherwise an empty password would swallow the next keyword
func dsn(dbConfig *config.Database, username, password, applicationName string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s application_name=%s",
		quote(dbConfig.Host),
		dbConfig.Port,
		quote(username),
		quote(password),
		quote(dbConfig.Name),
		quote(dbConfig.SslMode),
		quote(applicationName),
	)
}

func quote(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)
	return "'" + value + "'"
}

func Connect(ctx context.Context, dbConfig *config.Database, username, password, applicationName string) (self *gorm.DB, err error) {
	log := l.NewSublogger("db")

	logger := logger.New(log,
		logger.Config{
			SlowThreshold:             500 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Error,           // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,                  // Disable color
		},
	)

	self, err = gorm.Open(postgres.Open(dsn(dbConfig, username, password, applicationName)), &gorm.Config{
		Logger: logger,
		// Pinged below, with retries
		DisableAutomaticPing: true,
	})
	if err != nil {
		return
	}

	db, err := self.DB()
	if err != nil {
		return
	}

	// One connection for the whole run
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	err = task.NewRetry().
		WithContext(ctx).
		WithMaxRetries(dbConfig.PingRetries).
		WithMaxInterval(dbConfig.PingMaxInterval).
		WithOnError(func(err error) {
			log.WithError(err).WithField("host", dbConfig.Host).Warn("Database not reachable, retrying...")
		}).
		Run(func() error {
			return ping(ctx, dbConfig, self)
		})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return
}

func NewConnection(ctx context.Context, config *config.Config, applicationName string) (self *gorm.DB, err error) {
	err = Migrate(ctx, config)
	if err != nil {
		return
	}

	return Connect(ctx, &config.Database, config.Database.User, config.Database.Password, applicationName)
}

func Close(self *gorm.DB) error {
	db, err := self.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Migrate applies migrations if a migration user is configured
func Migrate(ctx context.Context, config *config.Config) (err error) {
	log := l.NewSublogger("db-migrate")

	if config.Database.MigrationUser == "" || config.Database.MigrationPassword == "" {
		log.Debug("Migration user not set, skipping migrations")
		return
	}

	err = MigrateWith(ctx, &config.Database, config.Database.MigrationUser, config.Database.MigrationPassword)
	if err != nil {
		return
	}

	config.Database.MigrationUser = ""
	config.Database.MigrationPassword = ""

	return
}

// MigrateWith always connects with the given credentials, an empty password is passed as is
func MigrateWith(ctx context.Context, dbConfig *config.Database, username, password string) (err error) {
	log := l.NewSublogger("db-migrate")

	migrations := &migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(sql_migrations.FS),
	}

	self, err := Connect(ctx, dbConfig, username, password, "reporter-migration")
	if err != nil {
		return
	}

	db, err := self.DB()
	if err != nil {
		return
	}
	defer db.Close()

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return
	}

	log.WithField("num", n).Info("Applied migrations")
	return
}

func ping(ctx context.Context, dbConfig *config.Database, db *gorm.DB) (err error) {
	if dbConfig.PingTimeout < 0 {
		// Ping disabled
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbConfig.PingTimeout)
	defer cancel()

	return sqlDB.PingContext(dbCtx)
}
