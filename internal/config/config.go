package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file location, relative to the process working directory.
const DefaultPath = "config/saver.yaml"

// Config holds everything the screensaver reads at startup. Zero values in the file
// mean "keep the default", so booleans can only be switched on from the file.
type Config struct {
	// Assets
	AssetDir     string  `yaml:"asset_dir"`
	CakePrefix   string  `yaml:"cake_prefix"`
	CakeVariants int     `yaml:"cake_variants"`
	CakeExt      string  `yaml:"cake_ext"`
	Background   string  `yaml:"background,omitempty"`
	CakeScale    float64 `yaml:"cake_scale"`

	// Simulation
	CakeCount  int     `yaml:"cake_count"`
	EdgeMargin float64 `yaml:"edge_margin"`
	MaxSpeed   float64 `yaml:"max_speed"`
	Seed       uint64  `yaml:"seed,omitempty"`

	// Click-to-fetch
	ImageURL        string        `yaml:"image_url"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	MaxResultExtent int           `yaml:"max_result_extent"`

	// Window
	Title        string `yaml:"title"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	TargetFPS    int    `yaml:"target_fps"`
	ShowFPS      bool   `yaml:"show_fps"`

	LogPath string `yaml:"log_path"`
}

// Default returns the stock configuration: ten cakes drawn from five images, speeds in
// [-2, 2) per tick, spawned at least 50 px from the edges, fetching from picsum.
func Default() Config {
	return Config{
		AssetDir:        "assets",
		CakePrefix:      "cake",
		CakeVariants:    5,
		CakeExt:         ".png",
		Background:      "background.png",
		CakeScale:       1,
		CakeCount:       10,
		EdgeMargin:      50,
		MaxSpeed:        2,
		ImageURL:        "https://picsum.photos/300",
		FetchTimeout:    60 * time.Second,
		MaxResultExtent: 600,
		Title:           "cake-saver",
		WindowWidth:     1280,
		WindowHeight:    720,
		TargetFPS:       60,
		LogPath:         "logs/saver.txt",
	}
}

// Load reads path and merges its non-zero values over Default(). A missing file is not an
// error. A file that does not parse or validate yields Default() along with the error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := copier.CopyWithOption(&cfg, &file, copier.Option{IgnoreEmpty: true}); err != nil {
		return Default(), fmt.Errorf("config: merge %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the simulation cannot start with.
func (c Config) Validate() error {
	switch {
	case c.CakeCount <= 0:
		return fmt.Errorf("config: cake_count must be positive, got %d", c.CakeCount)
	case c.CakeVariants <= 0:
		return fmt.Errorf("config: cake_variants must be positive, got %d", c.CakeVariants)
	case c.CakeScale <= 0:
		return fmt.Errorf("config: cake_scale must be positive, got %v", c.CakeScale)
	case c.MaxSpeed < 0:
		return fmt.Errorf("config: max_speed must not be negative, got %v", c.MaxSpeed)
	case c.EdgeMargin < 0:
		return fmt.Errorf("config: edge_margin must not be negative, got %v", c.EdgeMargin)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	case c.TargetFPS <= 0:
		return fmt.Errorf("config: target_fps must be positive, got %d", c.TargetFPS)
	case c.ImageURL == "":
		return errors.New("config: image_url is empty")
	}
	return nil
}

// CakeNames returns the cake asset file names: prefix1ext ... prefixNext.
func (c Config) CakeNames() []string {
	names := make([]string, c.CakeVariants)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d%s", c.CakePrefix, i+1, c.CakeExt)
	}
	return names
}
