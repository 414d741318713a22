package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

type GameConfig struct {
	Height    int `json:"height"`
	Width     int `json:"width"`
	MineCount int `json:"mine_count"`
}

func (g GameConfig) Params() mines.Params {
	return mines.Params{Height: g.Height, Width: g.Width, MineCount: g.MineCount}
}

type JwtConfig struct {
	Secret        string   `json:"secret"`
	SecretFile    string   `json:"secret_file"`
	TokenLifetime Duration `json:"token_lifetime"`
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"max_size"` // megabytes
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
}

type Config struct {
	Mode string     `json:"mode"`
	Addr string     `json:"addr"`
	Game GameConfig `json:"game"`
	Jwt  JwtConfig  `json:"jwt"`
	Log  LogConfig  `json:"log"`
}

// Default serves 9x9 fields with 10 mines on localhost.
func Default() *Config {
	return &Config{
		Mode: "production",
		Addr: "localhost:8000",
		Game: GameConfig{Height: 9, Width: 9, MineCount: 10},
		Jwt: JwtConfig{
			TokenLifetime: Duration{time.Hour * 24},
		},
		Log: LogConfig{MaxSize: 10, MaxBackups: 3, MaxAge: 28},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":               c.Mode,
		"addr":               c.Addr,
		"game_height":        c.Game.Height,
		"game_width":         c.Game.Width,
		"game_mine_count":    c.Game.MineCount,
		"jwt_secret_file":    c.Jwt.SecretFile,
		"jwt_token_lifetime": c.Jwt.TokenLifetime.Duration.String(),
		"log_file":           c.Log.File,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production" || Development()
}

// Read loads a JSON config on top of [Default] and applies environment
// overrides. An empty path skips the file.
func Read(path string) (*Config, error) {
	config := Default()
	if path != "" {
		if b, err := os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		} else if err := json.Unmarshal(b, config); err != nil {
			return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}
	if addr, ok := os.LookupEnv("MINEFIELD_ADDR"); ok {
		config.Addr = addr
	}
	if secret, ok := os.LookupEnv("MINEFIELD_JWT_SECRET"); ok {
		config.Jwt.Secret = secret
	}
	return config, nil
}

// Development reports whether the DEVELOPMENT env variable is set to
// anything but "0".
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	return ok && development != "0"
}
