package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/learntwin/internal/store"
)

// Environment variables read by Load.
const (
	EnvQuestions = "LEARNTWIN_QUESTIONS"
	EnvLog       = "LEARNTWIN_LOG"
	EnvStore     = "LEARNTWIN_STORE"
	EnvDB        = "LEARNTWIN_DB"
	EnvUser      = "LEARNTWIN_USER"
	EnvSeed      = "LEARNTWIN_SEED"
	EnvLogLevel  = "LEARNTWIN_LOG_LEVEL"
	EnvLogFormat = "LEARNTWIN_LOG_FORMAT"
	EnvLogFile   = "LEARNTWIN_LOG_FILE"
)

// Config holds runtime settings.
type Config struct {
	// QuestionsPath is the JSON question source.
	QuestionsPath string `validate:"required"`

	// Store selects the attempt log backend.
	Store store.Backend `validate:"oneof=csv sqlite"`

	// LogPath is the CSV attempt log, used by the csv backend and as the
	// default import source.
	LogPath string `validate:"required"`

	// DBPath is the SQLite database, used by the sqlite backend.
	DBPath string `validate:"required"`

	// User is the learner identity; empty means ask for it.
	User string

	// Seed drives question selection; 0 seeds from the clock.
	Seed uint64

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`
	LogFile   string // empty = stderr
}

var configValidator = validator.New()

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPath := os.Getenv(EnvDB)
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	}

	seed, err := getenvUint(EnvSeed)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		QuestionsPath: getenvDefault(EnvQuestions, "questions.json"),
		Store:         store.Backend(strings.ToLower(getenvDefault(EnvStore, string(store.BackendCSV)))),
		LogPath:       getenvDefault(EnvLog, "user_logs.csv"),
		DBPath:        dbPath,
		User:          strings.TrimSpace(os.Getenv(EnvUser)),
		Seed:          seed,
		LogLevel:      strings.ToLower(getenvDefault(EnvLogLevel, "warn")),
		LogFormat:     strings.ToLower(getenvDefault(EnvLogFormat, "text")),
		LogFile:       os.Getenv(EnvLogFile),
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// StorePath returns the file the selected backend writes to.
func (c *Config) StorePath() string {
	if c.Store == store.BackendSQLite {
		return c.DBPath
	}
	return c.LogPath
}

// DefaultLogFile returns a log file inside the data directory, used when
// the terminal is owned by the UI.
func DefaultLogFile() (string, error) {
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "learntwin.log"), nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvUint(k string) (uint64, error) {
	v := os.Getenv(k)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid seed: %w", k, v, err)
	}
	return n, nil
}
