package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	RendererRaylib   = "raylib"
	RendererTerminal = "terminal"
)

var ErrInvalid = errors.New("invalid config")

// Config holds the game settings.
type Config struct {
	Renderer       string  `json:"renderer"`
	TickMs         int     `json:"tick_ms"`
	Seed           uint64  `json:"seed"`
	WindowWidth    int     `json:"window_width"`
	WindowHeight   int     `json:"window_height"`
	EyeZ           float32 `json:"eye_z"`
	ResultsDB      string  `json:"results_db"`
	SnapshotDir    string  `json:"snapshot_dir"`
	SnapshotFormat string  `json:"snapshot_format"`
	LogFile        string  `json:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Renderer:       RendererRaylib,
		TickMs:         64,
		WindowWidth:    1280,
		WindowHeight:   800,
		EyeZ:           3,
		ResultsDB:      filepath.Join("data", "results.db"),
		SnapshotDir:    filepath.Join("data", "snapshots"),
		SnapshotFormat: "png",
		LogFile:        filepath.Join("data", "snake.log"),
	}
}

// Load reads the config at path over the defaults. A missing file is created
// with the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Renderer {
	case RendererRaylib, RendererTerminal:
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalid, c.Renderer)
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalid, c.TickMs)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.WindowWidth, c.WindowHeight)
	}
	if c.EyeZ <= 0 {
		return fmt.Errorf("%w: eye_z must be positive, got %v", ErrInvalid, c.EyeZ)
	}
	switch strings.ToLower(c.SnapshotFormat) {
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("%w: unsupported snapshot format %q", ErrInvalid, c.SnapshotFormat)
	}
	return nil
}
