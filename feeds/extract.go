package feeds

import (
	"strings"

	"github.com/samber/lo"

	"postfeed/models"
)

// DefaultImagePrefix is where the website serves images copied from the export
const DefaultImagePrefix = "/images/posts/"

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// ExtractText returns the first non-empty post text of a raw post.
// Later items are ignored, a post only ever has one caption.
func ExtractText(post models.RawPost) (string, bool) {
	item, ok := lo.Find(post.Data, func(d models.PostData) bool {
		return d.Post != ""
	})
	if !ok {
		return "", false
	}
	return item.Post, true
}

// ExtractImageURL returns the first usable image of a raw post
func ExtractImageURL(post models.RawPost) (string, bool) {
	return extractImageURL(post, DefaultImagePrefix)
}

func extractImageURL(post models.RawPost, prefix string) (string, bool) {
	for _, attachment := range post.Attachments {
		for _, item := range attachment.Data {
			if url, ok := imageFromAttachment(item, prefix); ok {
				return url, true
			}
		}
	}
	return "", false
}

func imageFromAttachment(item models.AttachmentData, prefix string) (string, bool) {
	if uri := item.MediaUri; uri != "" {
		if !strings.HasPrefix(uri, "http") {
			// Local file inside the export, e.g. "posts/media/Foo_123/122133159638731083.jpg"
			filename := uri[strings.LastIndex(uri, "/")+1:]
			if hasImageExtension(filename) {
				return prefix + filename, true
			}
		} else {
			return uri, true
		}
	}

	if url := item.ExternalUrl; url != "" {
		lower := strings.ToLower(url)
		// Shared links are mostly forms and articles, only keep those pointing at images
		if lo.SomeBy(imageExtensions, func(ext string) bool {
			return strings.Contains(lower, ext)
		}) {
			return url, true
		}
	}

	return "", false
}

func hasImageExtension(filename string) bool {
	return lo.SomeBy(imageExtensions, func(ext string) bool {
		return strings.HasSuffix(filename, ext)
	})
}
