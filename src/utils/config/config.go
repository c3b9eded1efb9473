package config

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "REPORTER_"

var (
	ErrMissingPort    = errors.New("database port is not set (DB_PORT)")
	ErrMissingDataDir = errors.New("data directory is not set (DATA_DIR)")
)

// Names used by deployments that predate the REPORTER_ prefix
var legacyEnv = map[string]string{
	"Database.Host":     "DB_HOST",
	"Database.Port":     "DB_PORT",
	"Database.Name":     "DB_NAME",
	"Database.User":     "DB_USER",
	"Database.Password": "DB_PASS",
	"Report.DataDir":    "DATA_DIR",
}

// Config stores global configuration
type Config struct {
	// Logging level
	LogLevel string

	// Logging format, text or json
	LogFormat string

	Database Database
	Report   Report
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LogLevel", "INFO")
	v.SetDefault("LogFormat", "text")

	setDatabaseDefaults(v)
	setReportDefaults(v)
}

// Visits every field and registers upper snake case ENV name for it
func bindEnv(v *viper.Viper, path []string, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		key := strings.Join(path, ".")
		env := []string{ENV_PREFIX + strcase.ToScreamingSnake(strings.Join(path, "_"))}
		if legacy, ok := legacyEnv[key]; ok {
			env = append(env, legacy)
		}

		err := v.BindEnv(append([]string{key}, env...)...)
		if err != nil {
			panic(err)
		}
		return
	}

	for i := 0; i < val.NumField(); i++ {
		newPath := make([]string, len(path))
		copy(newPath, path)
		newPath = append(newPath, val.Type().Field(i).Name)
		bindEnv(v, newPath, val.Field(i))
	}
}

func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		// Never overrides variables that are already set
		_ = godotenv.Load(".env")
	}
}

// Load configuration from file and env
func Load(filename string) (config *Config, err error) {
	loadDotEnv()

	v := viper.New()
	v.SetConfigType("json")

	setDefaults(v)
	bindEnv(v, []string{}, reflect.ValueOf(Config{}))

	// Empty filename means only env and defaults are used
	if filename != "" {
		var content []byte
		/* #nosec */
		content, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}

		err = v.ReadConfig(bytes.NewBuffer(content))
		if err != nil {
			return nil, err
		}
	}

	config = new(Config)
	err = v.Unmarshal(config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, err
	}

	return
}

// ValidateDatabase checks what has to be known before connecting
func (self *Config) ValidateDatabase() error {
	if self.Database.Port == 0 {
		return ErrMissingPort
	}
	return nil
}

// Validate checks the values that have to be known before anything touches the database
func (self *Config) Validate() error {
	err := self.ValidateDatabase()
	if err != nil {
		return err
	}
	if self.Report.DataDir == "" {
		return ErrMissingDataDir
	}
	return nil
}
