package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TomlFeed configures the build command
type TomlFeed struct {
	InputPath     string `toml:"input_path"`
	OutputPath    string `toml:"output_path"`
	MinTextLength int    `toml:"min_text_length"`
	MaxPosts      int    `toml:"max_posts"` // 0 means no limit
	ImagePrefix   string `toml:"image_prefix"`
	MetricsPath   string `toml:"metrics_path,omitempty"`
}

// TomlSitemap configures the sitemap command
type TomlSitemap struct {
	SiteUrl     string   `toml:"site_url"`
	Languages   []string `toml:"languages"`
	StaticPages []string `toml:"static_pages"`
	OutputPath  string   `toml:"output_path"`
}

// TomlConfig represents the top-level configuration
type TomlConfig struct {
	Feed    TomlFeed    `toml:"feed"`
	Sitemap TomlSitemap `toml:"sitemap"`
}

// Default returns the configuration used when no file is given
func Default() *TomlConfig {
	return &TomlConfig{
		Feed: TomlFeed{
			InputPath:     "data/your_posts_1.json",
			OutputPath:    "public/data/facebook-posts.json",
			MinTextLength: 50,
			MaxPosts:      0,
			ImagePrefix:   "/images/posts/",
		},
		Sitemap: TomlSitemap{
			SiteUrl:     "http://localhost:3000",
			Languages:   []string{"en"},
			StaticPages: []string{""},
			OutputPath:  "dist/sitemap.xml",
		},
	}
}

// LoadConfig reads a TOML file on top of the defaults, so any key left out
// keeps its default value
func LoadConfig(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// LoadOptional is LoadConfig that falls back to the defaults when the file
// does not exist
func LoadOptional(path string) (*TomlConfig, error) {
	config, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

func (c *TomlFeed) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("min text length must not be negative, got %d", c.MinTextLength)
	}
	if c.MaxPosts < 0 {
		return fmt.Errorf("max posts must not be negative, got %d", c.MaxPosts)
	}
	return nil
}

func (c *TomlSitemap) Validate() error {
	if c.SiteUrl == "" {
		return errors.New("site url is required")
	}
	if len(c.Languages) == 0 {
		return errors.New("at least one language is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	return nil
}
