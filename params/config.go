package params

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Log struct {
	File  string `env:"FILE" envDefault:"data/sbed.log"`
	Level string `env:"LEVEL" envDefault:"info"`
}

type API struct {
	Addr           string   `env:"ADDR" envDefault:":8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	// MaxBodyBytes caps request bodies on encode, decode and frame routes.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"65536"`
}

type Storage struct {
	// DataDir holds the pebble frame archive.
	DataDir string `env:"DATA_DIR" envDefault:"data/frames"`
	// FrameLogFile receives every accepted frame back to back.
	FrameLogFile string `env:"FRAME_LOG_FILE" envDefault:"data/frames.log"`
}

type Config struct {
	Log     Log     `envPrefix:"LOG_"`
	API     API     `envPrefix:"API_"`
	Storage Storage
	// Verbose turns on CLI logging.
	Verbose bool `env:"SBE_VERBOSE" envDefault:"false"`
}

// Default returns the tag defaults without reading the process environment.
func Default() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Errorf("config defaults: %w", err))
	}
	return cfg
}

// LoadFromEnv loads configuration from .env file (if exists) and environment variables
// Priority: ENV > .env file > defaults
func LoadFromEnv(envPath string) (Config, error) {
	// optional; a missing file is not an error
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
