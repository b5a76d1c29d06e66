package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postfeed/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postfeed.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[feed]
input_path = "export/your_posts_1.json"
max_posts = 20

[sitemap]
site_url = "https://neusatz.online"
languages = ["ua", "en", "de"]
static_pages = ["", "projects", "news"]
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "export/your_posts_1.json", cfg.Feed.InputPath)
	assert.Equal(t, 20, cfg.Feed.MaxPosts)
	// Keys left out keep their defaults
	assert.Equal(t, 50, cfg.Feed.MinTextLength)
	assert.Equal(t, "public/data/facebook-posts.json", cfg.Feed.OutputPath)
	assert.Equal(t, "/images/posts/", cfg.Feed.ImagePrefix)

	assert.Equal(t, "https://neusatz.online", cfg.Sitemap.SiteUrl)
	assert.Equal(t, []string{"ua", "en", "de"}, cfg.Sitemap.Languages)
	assert.Equal(t, []string{"", "projects", "news"}, cfg.Sitemap.StaticPages)
	assert.Equal(t, "dist/sitemap.xml", cfg.Sitemap.OutputPath)

	assert.NoError(t, cfg.Feed.Validate())
	assert.NoError(t, cfg.Sitemap.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.LoadConfig(writeConfig(t, "[feed\nmax_posts = "))
	assert.ErrorContains(t, err, "error parsing config file")

	_, err = config.LoadConfig(writeConfig(t, "[feed]\nmax_posts = \"many\"\n"))
	assert.Error(t, err)
}

func TestLoadOptional(t *testing.T) {
	cfg, err := config.LoadOptional(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.LoadOptional(writeConfig(t, "[feed]\nmin_text_length = 10\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Feed.MinTextLength)
}

func TestFeedValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.TomlFeed)
		valid  bool
	}{
		{name: "defaults", modify: func(c *config.TomlFeed) {}, valid: true},
		{name: "zero min length", modify: func(c *config.TomlFeed) { c.MinTextLength = 0 }, valid: true},
		{name: "negative min length", modify: func(c *config.TomlFeed) { c.MinTextLength = -1 }},
		{name: "negative max posts", modify: func(c *config.TomlFeed) { c.MaxPosts = -5 }},
		{name: "no input", modify: func(c *config.TomlFeed) { c.InputPath = "" }},
		{name: "no output", modify: func(c *config.TomlFeed) { c.OutputPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := config.Default().Feed
			tt.modify(&feed)
			if tt.valid {
				assert.NoError(t, feed.Validate())
			} else {
				assert.Error(t, feed.Validate())
			}
		})
	}
}

func TestSitemapValidate(t *testing.T) {
	sitemap := config.Default().Sitemap
	assert.NoError(t, sitemap.Validate())

	sitemap.Languages = nil
	assert.Error(t, sitemap.Validate())

	sitemap = config.Default().Sitemap
	sitemap.SiteUrl = ""
	assert.Error(t, sitemap.Validate())
}
