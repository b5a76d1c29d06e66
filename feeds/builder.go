package feeds

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"

	"postfeed/models"
)

// Options configure a FeedBuilder
type Options struct {
	// MinTextLength is the minimum number of characters of post text
	MinTextLength int
	// MaxPosts caps the number of posts, 0 means no limit
	MaxPosts int
	// ImagePrefix replaces the directory of local images
	ImagePrefix string
	// Location dates are formatted in, defaults to the local time zone
	Location *time.Location
	Metrics  *Metrics
}

// FeedBuilder normalizes, filters, sorts and limits raw posts
type FeedBuilder struct {
	maxPosts    int
	imagePrefix string
	location    *time.Location
	filters     []PostFilter
	metrics     *Metrics
}

func NewFeedBuilder(opts Options) *FeedBuilder {
	b := &FeedBuilder{
		maxPosts:    opts.MaxPosts,
		imagePrefix: opts.ImagePrefix,
		location:    opts.Location,
		filters:     make([]PostFilter, 0),
		metrics:     opts.Metrics,
	}

	if b.imagePrefix == "" {
		b.imagePrefix = DefaultImagePrefix
	}
	if b.location == nil {
		b.location = time.Local
	}
	if b.metrics == nil {
		b.metrics = NewMetrics()
	}

	b.AddFilter(&MinTextLengthFilter{MinLength: opts.MinTextLength})

	return b
}

func (b *FeedBuilder) AddFilter(filter PostFilter) {
	b.filters = append(b.filters, filter)
}

// Build returns the feed for the given raw posts, newest first. Posts with the
// same timestamp keep the order they had in the export.
func (b *FeedBuilder) Build(raw []models.RawPost) []models.Post {
	b.metrics.Loaded.Add(float64(len(raw)))

	posts := make([]models.Post, 0, len(raw))
	for i, record := range raw {
		post, ok := b.normalize(i, record)
		if !ok {
			continue
		}
		posts = append(posts, post)
	}

	slices.SortStableFunc(posts, func(x, y models.Post) int {
		return cmp.Compare(y.Timestamp, x.Timestamp)
	})

	if b.maxPosts > 0 && len(posts) > b.maxPosts {
		posts = posts[:b.maxPosts]
	}

	b.metrics.Written.Add(float64(len(posts)))
	for _, post := range posts {
		if post.ImageUrl != nil {
			b.metrics.WithImage.Inc()
		}
	}

	return posts
}

func (b *FeedBuilder) normalize(index int, raw models.RawPost) (models.Post, bool) {
	text, hasText := ExtractText(raw)
	if hasText {
		text = FixEncoding(text)
	}

	candidate := Candidate{
		Index:     index,
		Timestamp: raw.Timestamp,
		Text:      text,
		HasText:   hasText,
	}

	for _, filter := range b.filters {
		if ok, reason := filter.Accept(candidate); !ok {
			b.metrics.Skipped.WithLabelValues(reason).Inc()
			log.WithFields(log.Fields{
				"index":     index,
				"timestamp": raw.Timestamp,
				"reason":    reason,
			}).Debug("Skipping post")
			return models.Post{}, false
		}
	}

	post := models.Post{
		Id:        PostId(raw.Timestamp, index),
		Timestamp: raw.Timestamp,
		Date:      FormatDate(raw.Timestamp, b.location),
		Text:      text,
	}
	if url, ok := extractImageURL(raw, b.imagePrefix); ok {
		post.ImageUrl = &url
	}

	return post, true
}

// PostId is unique per export since the index of the record is part of it
func PostId(timestamp int64, index int) string {
	return fmt.Sprintf("fb-%d-%d", timestamp, index)
}

func FormatDate(timestamp int64, loc *time.Location) string {
	return time.Unix(timestamp, 0).In(loc).Format(time.DateOnly)
}
