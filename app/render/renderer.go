package render

import (
	"cmp"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"rssnotify/app/feed"
)

const (
	// Cleaned summary budget inside a caption.
	maxSummaryLen = 600
	// Telegram caps photo captions at 1024 characters; keep headroom
	// for markup added after truncation.
	maxCaptionLen = 900
	// Telegram caps plain messages at 4096 characters.
	maxTextLen = 4000
)

// Notification is a fully rendered item: an optional illustration URL
// plus an HTML caption and a plain-text fallback body.
type Notification struct {
	ImageURL string
	Caption  string
	Plain    string
}

type Renderer struct {
	siteBase string
	policy   *bluemonday.Policy
}

func NewRenderer(siteBase string) *Renderer {
	return &Renderer{
		siteBase: strings.TrimRight(siteBase, "/"),
		policy:   bluemonday.StrictPolicy(),
	}
}

// Run renders an item. It always succeeds; the result may simply carry
// no image.
func (r *Renderer) Run(item feed.Item) Notification {
	return Notification{
		ImageURL: r.extractImage(item),
		Caption:  r.buildCaption(item),
		Plain:    r.buildPlain(item),
	}
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeHTML escapes the three markup-significant characters for
// Telegram HTML mode. A single Replacer pass never re-escapes its own
// output.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// cleanText strips markup tags, decodes HTML entities and collapses
// whitespace runs into single spaces.
func (r *Renderer) cleanText(s string) string {
	stripped := r.policy.Sanitize(s)
	decoded := html.UnescapeString(stripped)
	return collapseWhitespace(decoded)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func (r *Renderer) buildCaption(item feed.Item) string {
	title := cmp.Or(item.Title, "No title")

	// Titles are escaped, not stripped: angle-bracketed text in a title
	// is content and must survive into the caption.
	parts := []string{"<b>" + escapeHTML(collapseWhitespace(title)) + "</b>"}

	if summary := r.cleanText(cmp.Or(item.Description, item.Content)); summary != "" {
		parts = append(parts, escapeHTML(truncate(summary, maxSummaryLen)))
	}

	if item.Link != "" {
		parts = append(parts, `🔗 <a href="`+escapeHTML(item.Link)+`">Open post</a>`)
	}

	return truncate(strings.Join(parts, "\n\n"), maxCaptionLen)
}

// buildPlain composes the markup-free fallback body sent when the
// formatted variant is rejected by the delivery endpoint.
func (r *Renderer) buildPlain(item feed.Item) string {
	title := cmp.Or(item.Title, "No title")

	parts := []string{r.cleanText(title)}

	// The plain body has no caption-size constraint, so the summary is
	// carried in full; only the whole-message ceiling applies.
	if summary := r.cleanText(cmp.Or(item.Description, item.Content)); summary != "" {
		parts = append(parts, summary)
	}

	if item.Link != "" {
		parts = append(parts, item.Link)
	}

	return truncate(strings.Join(parts, "\n\n"), maxTextLen)
}
