// Package sitemap builds the sitemaps.org document for the website, covering
// the static pages and one news page per feed post in every language.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"postfeed/models"
)

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is a single <url> entry
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Site describes what goes into the sitemap
type Site struct {
	BaseUrl     string
	Languages   []string
	StaticPages []string
}

// URLs lists the static pages for every language first, then the news post
// pages for every language
func (s Site) URLs(posts []models.Post, now time.Time) []URL {
	base := strings.TrimRight(s.BaseUrl, "/")
	lastMod := now.UTC().Format(time.DateOnly)
	languages := lo.Uniq(lo.Compact(s.Languages))

	urls := make([]URL, 0, len(languages)*(len(s.StaticPages)+len(posts)))

	for _, lang := range languages {
		urls = append(urls, lo.Map(s.StaticPages, func(page string, _ int) URL {
			if page == "" {
				return URL{
					Loc:        fmt.Sprintf("%s/%s", base, lang),
					LastMod:    lastMod,
					ChangeFreq: "monthly",
					Priority:   "1.0",
				}
			}
			return URL{
				Loc:        fmt.Sprintf("%s/%s/%s", base, lang, strings.Trim(page, "/")),
				LastMod:    lastMod,
				ChangeFreq: "monthly",
				Priority:   "0.8",
			}
		})...)
	}

	for _, lang := range languages {
		urls = append(urls, lo.Map(posts, func(post models.Post, _ int) URL {
			return URL{
				Loc:        fmt.Sprintf("%s/%s/news/%s", base, lang, post.Id),
				LastMod:    lastMod,
				ChangeFreq: "weekly",
				Priority:   "0.6",
			}
		})...)
	}

	return urls
}

// Generate renders the sitemap XML and returns it along with the number of URLs
func (s Site) Generate(posts []models.Post, now time.Time) ([]byte, int, error) {
	urls := s.URLs(posts, now)

	body, err := xml.MarshalIndent(urlSet{Xmlns: namespace, URLs: urls}, "", "  ")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode sitemap: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')

	return out, len(urls), nil
}
