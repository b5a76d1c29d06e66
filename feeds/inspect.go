package feeds

import (
	"strings"

	"github.com/samber/lo"

	"postfeed/models"
)

// Search returns the posts whose text contains term, ignoring case.
// A blank term matches everything.
func Search(posts []models.Post, term string) []models.Post {
	if strings.TrimSpace(term) == "" {
		return posts
	}

	term = strings.ToLower(term)
	return lo.Filter(posts, func(post models.Post, _ int) bool {
		return strings.Contains(strings.ToLower(post.Text), term)
	})
}

// Truncate shortens text to at most maxLength characters, cutting at the last
// space when there is one, and appends an ellipsis
func Truncate(text string, maxLength int) string {
	if maxLength < 0 || len([]rune(text)) <= maxLength {
		return text
	}

	truncated := lo.Substring(text, 0, uint(maxLength))
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		return truncated[:lastSpace] + "..."
	}
	return truncated + "..."
}

// Preview is the start of a text as shown on the console
func Preview(text string, length int) string {
	return lo.Substring(text, 0, uint(length))
}
