package notify

import (
	"context"

	"rssnotify/app/feed"
)

// Fetcher yields the feed's current items.
type Fetcher interface {
	Run(ctx context.Context, url string) ([]feed.Item, error)
}

// Sender posts rendered notifications to the delivery endpoint.
type Sender interface {
	SendMessage(ctx context.Context, text string, parseMode string, disablePreview bool) error
	SendPhoto(ctx context.Context, photoURL, caption string, parseMode string) error
}

// Store persists the set of already delivered item identities.
type Store interface {
	Load() map[string]struct{}
	Save(seen map[string]struct{}) error
}
