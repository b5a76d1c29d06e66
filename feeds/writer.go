package feeds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"postfeed/models"
)

// WriteError is returned when an output file or its directory cannot be written
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write stores the feed as an indented JSON array, replacing any existing
// file. Non-ASCII text is written as-is rather than escaped.
func Write(path string, posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("failed to encode feed: %w", err)}
	}

	data := unescapeLineSeparators(buf.Bytes())
	if err := WriteFile(path, data); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"path":  path,
		"posts": len(posts),
		"bytes": len(data),
	}).Debug("Wrote feed")

	return nil
}

// unescapeLineSeparators undoes the \u2028 and \u2029 escapes the encoder
// applies even with HTML escaping turned off. Escaped backslashes are skipped
// so a literal "\\u2028" in the text stays as it is.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		switch {
		case bytes.HasPrefix(b[i:], []byte(`\u2028`)):
			out = utf8.AppendRune(out, '\u2028')
			i += 5
		case bytes.HasPrefix(b[i:], []byte(`\u2029`)):
			out = utf8.AppendRune(out, '\u2029')
			i += 5
		default:
			out = append(out, b[i], b[i+1])
			i++
		}
	}
	return out
}

// WriteFile creates the parent directories of path and writes data to it
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
