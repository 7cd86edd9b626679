package notify

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"rssnotify/app/feed"
	"rssnotify/app/render"
	"rssnotify/app/telegram"
)

// Notifier runs one reconciliation batch: load the seen-set, fetch the
// feed, deliver every not-yet-seen item in chronological order, persist
// the seen-set when anything was delivered.
type Notifier struct {
	fetcher   Fetcher
	filterer  *feed.Filterer
	renderer  *render.Renderer
	sender    Sender
	store     Store
	feedURL   string
	filters   []feed.ConfigFilter
	sendDelay time.Duration
}

func NewNotifier(fetcher Fetcher, renderer *render.Renderer, sender Sender, store Store,
	feedURL string, filters []feed.ConfigFilter, sendDelay time.Duration) *Notifier {
	return &Notifier{
		fetcher:   fetcher,
		filterer:  feed.NewFilterer(),
		renderer:  renderer,
		sender:    sender,
		store:     store,
		feedURL:   feedURL,
		filters:   filters,
		sendDelay: sendDelay,
	}
}

type pendingItem struct {
	id   string
	item feed.Item
}

func (n *Notifier) Run(ctx context.Context) error {
	slog.Info("Starting RSS check", "url", n.feedURL)

	seen := n.store.Load()
	slog.Info("Seen state loaded", "count", len(seen))

	items, err := n.fetcher.Run(ctx, n.feedURL)
	if err != nil {
		// A broken fetch means zero new items this run, not a crash:
		// the next invocation retries the whole feed.
		slog.Warn("Feed fetch failed", "url", n.feedURL, "error", err)
		items = nil
	}

	items = n.filterer.Run(items, n.filters)

	var fresh []pendingItem
	for _, item := range items {
		id := feed.Identity(item)
		if _, ok := seen[id]; !ok {
			fresh = append(fresh, pendingItem{id: id, item: item})
		}
	}

	// Deliver oldest first. Items with no time information sort ahead
	// of dated ones; the stable sort keeps their feed order.
	slices.SortStableFunc(fresh, func(a, b pendingItem) int {
		return sortTime(a.item).Compare(sortTime(b.item))
	})

	slog.Info("Feed checked", "total", len(items), "new", len(fresh))

	sent := 0
	for _, p := range fresh {
		rendered := n.renderer.Run(p.item)
		if err := n.deliver(ctx, rendered); err != nil {
			// Stop instead of skipping: delivering later items past a
			// failed one would break chronological order on retry.
			slog.Error("Delivery failed, stopping batch", "title", p.item.Title, "error", err)
			break
		}

		seen[p.id] = struct{}{}
		sent++
		slog.Info("Sent", "title", p.item.Title)

		// Pace sends to avoid hitting endpoint rate limits.
		time.Sleep(n.sendDelay)
	}

	if sent == 0 {
		slog.Info("No messages sent, seen state unchanged")
		return nil
	}

	if err := n.store.Save(seen); err != nil {
		return fmt.Errorf("failed to save seen state: %w", err)
	}
	slog.Info("Seen state saved", "sent", sent, "total", len(seen))

	return nil
}

// sortTime picks the timestamp an item is ordered by: published time,
// else updated time, else the zero time.
func sortTime(item feed.Item) time.Time {
	if !item.PublishedAt.IsZero() {
		return item.PublishedAt
	}
	if item.UpdatedAt != nil {
		return *item.UpdatedAt
	}
	return time.Time{}
}

type deliveryAttempt struct {
	name string
	send func(context.Context) error
}

// deliver tries each applicable strategy in order until one succeeds:
// photo with HTML caption (when an image resolved) or HTML text, then
// a plain-text message. Returns the last failure when all are exhausted.
func (n *Notifier) deliver(ctx context.Context, rendered render.Notification) error {
	var attempts []deliveryAttempt

	if rendered.ImageURL != "" {
		attempts = append(attempts, deliveryAttempt{"photo", func(ctx context.Context) error {
			return n.sender.SendPhoto(ctx, rendered.ImageURL, rendered.Caption, telegram.ParseModeHTML)
		}})
	} else {
		attempts = append(attempts, deliveryAttempt{"html text", func(ctx context.Context) error {
			return n.sender.SendMessage(ctx, rendered.Caption, telegram.ParseModeHTML, false)
		}})
	}

	attempts = append(attempts, deliveryAttempt{"plain text", func(ctx context.Context) error {
		return n.sender.SendMessage(ctx, rendered.Plain, "", false)
	}})

	var lastErr error
	for _, attempt := range attempts {
		if lastErr != nil {
			slog.Warn("Falling back", "to", attempt.name, "error", lastErr)
		}
		if err := attempt.send(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return lastErr
}
