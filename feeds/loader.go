package feeds

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"postfeed/models"
)

// LoadError is returned when an input file cannot be read or is not a JSON array
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var (
	errNotArray = errors.New("top-level value is not an array")
	errNotUTF8  = errors.New("input is not valid UTF-8")
)

// Load reads an exported posts file. The order of the records is kept as-is
// since the record index becomes part of the post id.
func Load(path string) ([]models.RawPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	posts, err := parseArray[models.RawPost](data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	log.WithFields(log.Fields{
		"path":    path,
		"records": len(posts),
	}).Debug("Loaded export")

	return posts, nil
}

// ReadFeed reads a feed file previously written by Write
func ReadFeed(path string) ([]models.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	posts, err := parseArray[models.Post](data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return posts, nil
}

func parseArray[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	// A UTF-8 byte order mark is not valid JSON but shows up in hand-edited exports
	trimmed = bytes.TrimPrefix(trimmed, []byte("\xef\xbb\xbf"))

	// The decoder would silently turn invalid bytes into U+FFFD
	if !utf8.Valid(trimmed) {
		return nil, errNotUTF8
	}
	if !json.Valid(trimmed) {
		return nil, errors.New("invalid JSON")
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	items := []T{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("failed to decode array: %w", err)
	}
	return items, nil
}
