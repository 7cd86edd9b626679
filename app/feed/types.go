package feed

import (
	"time"
)

// Feed processing types

type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     string
	Published   string // raw date string as it appeared in the feed
	PublishedAt time.Time
	UpdatedAt   *time.Time
	Categories  []string

	Media []MediaCandidate // candidate illustrations in feed order
}

// MediaCandidate is a possible illustration for an item, gathered from
// media extensions, the item image or an enclosure.
type MediaCandidate struct {
	URL  string
	Type string // MIME type when the feed provided one
}

// Configuration types

type Config struct {
	URL      string         `yaml:"url"`
	SiteBase string         `yaml:"site_base"`
	Filters  []ConfigFilter `yaml:"filters"`
}

type ConfigFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
