package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postfeed/cmd"
	"postfeed/feeds"
)

const export = `[
	{
		"timestamp": 100,
		"data": [{"post": "Ã\u009cber sechzig Zeichen lang ist dieser Beitrag Ã¼ber unser Projekt."}]
	},
	{
		"timestamp": 200,
		"data": [{"post": "Too short"}]
	},
	{
		"timestamp": 300,
		"data": [{"post": "A long enough update about the new shelter we opened last week."}],
		"attachments": [{"data": [{"media": {"uri": "foo/bar/122133159638731083.jpg"}}]}]
	}
]`

// run uses an empty config file so only defaults and flags apply
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithConfig(t, writeFile(t, t.TempDir(), "postfeed.toml", ""), args...)
}

func runWithConfig(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := cmd.RootApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"postfeed", "--config", configPath}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "posts.json", export)
	output := filepath.Join(dir, "public", "data", "facebook-posts.json")
	configPath := writeFile(t, dir, "postfeed.toml", "[feed]\nmin_text_length = 50\n")

	out, err := runWithConfig(t, configPath, "build", "--input", input, "--output", output)
	require.NoError(t, err)

	assert.Contains(t, out, "Total posts in file: 3")
	assert.Contains(t, out, "Processed 2 posts with substantial content")
	assert.Contains(t, out, "✓ Included 2 posts")
	assert.Contains(t, out, "Image: /images/posts/122133159638731083.jpg")

	posts, err := feeds.ReadFeed(output)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "fb-300-2", posts[0].Id)
	require.NotNil(t, posts[0].ImageUrl)
	assert.Equal(t, "/images/posts/122133159638731083.jpg", *posts[0].ImageUrl)

	assert.Equal(t, "fb-100-0", posts[1].Id)
	assert.True(t, strings.HasPrefix(posts[1].Text, "Über sechzig"))
	assert.Nil(t, posts[1].ImageUrl)
}

func TestBuildMaxPostsAndMetrics(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "posts.json", export)
	output := filepath.Join(dir, "feed.json")
	metrics := filepath.Join(dir, "metrics", "postfeed.prom")

	_, err := run(t, "build", "-i", input, "-o", output, "--max-posts", "1", "--metrics", metrics)
	require.NoError(t, err)

	posts, err := feeds.ReadFeed(output)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(300), posts[0].Timestamp)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "postfeed_records_loaded_total 3")
	assert.Contains(t, string(data), "postfeed_posts_written_total 1")
}

func TestBuildMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "build", "-i", filepath.Join(dir, "missing.json"), "-o", filepath.Join(dir, "feed.json"))

	var loadErr *feeds.LoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.NoFileExists(t, filepath.Join(dir, "feed.json"))
}

func TestBuildUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "posts.json", export)
	blocker := writeFile(t, dir, "blocker", "")

	_, err := run(t, "build", "-i", input, "-o", filepath.Join(blocker, "feed.json"))

	var writeErr *feeds.WriteError
	assert.True(t, errors.As(err, &writeErr))
}

func TestBuildInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "posts.json", export)

	_, err := run(t, "build", "-i", input, "-o", filepath.Join(dir, "feed.json"), "--max-posts", "-1")
	assert.ErrorContains(t, err, "invalid feed configuration")
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := runWithConfig(t, filepath.Join(t.TempDir(), "missing.toml"), "build")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSitemap(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "posts.json", export)
	feed := filepath.Join(dir, "feed.json")
	sitemapPath := filepath.Join(dir, "dist", "sitemap.xml")

	_, err := run(t, "build", "-i", input, "-o", feed)
	require.NoError(t, err)

	out, err := run(t, "sitemap",
		"--feed", feed,
		"--output", sitemapPath,
		"--site-url", "https://neusatz.online",
		"-l", "ua", "-l", "en",
	)
	require.NoError(t, err)
	// One static page and two posts for each of the two languages
	assert.Contains(t, out, "✓ Total URLs: 6")

	data, err := os.ReadFile(sitemapPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<loc>https://neusatz.online/en/news/fb-300-2</loc>")
	assert.Contains(t, string(data), "<loc>https://neusatz.online/ua</loc>")
}

func TestSitemapMissingFeed(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "sitemap", "--feed", filepath.Join(dir, "missing.json"), "--output", filepath.Join(dir, "sitemap.xml"))

	var loadErr *feeds.LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestShow(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "posts.json", export)
	feed := filepath.Join(dir, "feed.json")

	_, err := run(t, "build", "-i", input, "-o", feed)
	require.NoError(t, err)

	out, err := run(t, "show", "--feed", feed, "--search", "SHELTER", "--width", "20")
	require.NoError(t, err)

	assert.Contains(t, out, "1 of 2 posts")
	assert.Contains(t, out, "fb-300-2")
	assert.Contains(t, out, "A long enough...")
	assert.NotContains(t, out, "fb-100-0")
}
