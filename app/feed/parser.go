package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) ([]Item, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, p.normalizeItem(item))
	}

	return items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	normalized := Item{
		GUID:        item.GUID,
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
		Content:     item.Content,
		Published:   item.Published,
	}

	if item.PublishedParsed != nil {
		normalized.PublishedAt = *item.PublishedParsed
	}

	if item.UpdatedParsed != nil {
		normalized.UpdatedAt = item.UpdatedParsed
	}

	if item.Categories != nil {
		normalized.Categories = item.Categories
	}

	normalized.Media = p.extractMedia(item)

	return normalized
}

// extractMedia gathers candidate illustration URLs in a fixed scan
// order: media:content, media:thumbnail (including media:group
// children), the item image, then enclosures. Candidates with no
// resolvable URL are skipped.
func (p *Parser) extractMedia(item *gofeed.Item) []MediaCandidate {
	var media []MediaCandidate

	if m, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail", "group"} {
			for _, e := range m[key] {
				media = append(media, extensionCandidates(e)...)
			}
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		media = append(media, MediaCandidate{URL: item.Image.URL})
	}

	for _, enclosure := range item.Enclosures {
		if enclosure != nil && enclosure.URL != "" {
			media = append(media, MediaCandidate{URL: enclosure.URL, Type: enclosure.Type})
		}
	}

	return media
}

// extensionCandidates probes one extension element for a URL under the
// conventional attribute keys and descends into media:group children.
func extensionCandidates(e ext.Extension) []MediaCandidate {
	var media []MediaCandidate

	for _, key := range []string{"url", "src", "href"} {
		if v := e.Attrs[key]; v != "" {
			media = append(media, MediaCandidate{URL: v, Type: e.Attrs["type"]})
			break
		}
	}

	for _, key := range []string{"content", "thumbnail"} {
		for _, child := range e.Children[key] {
			media = append(media, extensionCandidates(child)...)
		}
	}

	return media
}
