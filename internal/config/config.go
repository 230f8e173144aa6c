package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Board    Board  `yaml:"board"`
	Render   Render `yaml:"render"`
	Redis    Redis  `yaml:"redis"`
}

type Board struct {
	Dimension int `yaml:"dimension" env:"BOARD_DIMENSION" env-default:"3"`
}

// Render holds the pixel geometry handed to renderers. The game itself never reads it.
type Render struct {
	SpriteWidth   int    `yaml:"sprite-width" env:"RENDER_SPRITE_WIDTH" env-default:"32"`
	SpriteHeight  int    `yaml:"sprite-height" env:"RENDER_SPRITE_HEIGHT" env-default:"32"`
	LineThickness int    `yaml:"line-thickness" env:"RENDER_LINE_THICKNESS" env-default:"2"`
	FrameRate     int    `yaml:"frame-rate" env:"RENDER_FRAME_RATE" env-default:"8"`
	XAsset        string `yaml:"x-asset" env:"RENDER_X_ASSET" env-default:"assets/x.png"`
	OAsset        string `yaml:"o-asset" env:"RENDER_O_ASSET" env-default:"assets/o.png"`
}

type Redis struct {
	Enabled   bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host      string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port      string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	KeyPrefix string        `yaml:"key-prefix" env:"REDIS_KEY_PREFIX" env-default:"tictactoe"`
	TTL       time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads an optional .env file, then the yaml file with environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if config.Board.Dimension < 1 {
		return nil, fmt.Errorf("%w: board dimension %d", ErrInvalidConfig, config.Board.Dimension)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
