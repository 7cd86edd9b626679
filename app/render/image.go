package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rssnotify/app/feed"
)

// extractImage returns the first usable illustration URL: structured
// media candidates in feed order, then the first <img> tag embedded in
// the item's text fields. Returns "" when nothing resolves.
func (r *Renderer) extractImage(item feed.Item) string {
	for _, m := range item.Media {
		if m.URL != "" {
			return r.fixImageURL(m.URL)
		}
	}

	for _, field := range []string{item.Description, item.Content} {
		if src := firstImgSrc(field); src != "" {
			return r.fixImageURL(src)
		}
	}

	return ""
}

// firstImgSrc scans an HTML fragment for the first <img> carrying a
// src attribute. Parsing is best-effort: anything unscannable yields "".
func firstImgSrc(fragment string) string {
	if !strings.Contains(strings.ToLower(fragment), "<img") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

// fixImageURL normalizes protocol-relative and site-relative URLs into
// absolute ones the delivery endpoint can fetch.
func (r *Renderer) fixImageURL(url string) string {
	switch {
	case strings.HasPrefix(url, "//"):
		return "https:" + url
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return url
	case strings.HasPrefix(url, "/"):
		return r.siteBase + url
	default:
		return r.siteBase + "/" + url
	}
}
