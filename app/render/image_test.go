package render

import (
	"testing"

	"rssnotify/app/feed"
)

func TestFixImageURL(t *testing.T) {
	renderer := NewRenderer("https://site.example")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"protocol relative", "//cdn.example/x.png", "https://cdn.example/x.png"},
		{"root relative", "/img/x.png", "https://site.example/img/x.png"},
		{"schemeless relative", "img/x.png", "https://site.example/img/x.png"},
		{"absolute https", "https://already.example/x.png", "https://already.example/x.png"},
		{"absolute http", "http://plain.example/x.png", "http://plain.example/x.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderer.fixImageURL(tt.in); got != tt.want {
				t.Errorf("fixImageURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstImgSrc(t *testing.T) {
	got := firstImgSrc(`<p>Intro</p><IMG SRC="//cdn.example/pic.jpg" alt="x"> trailing`)
	if got != "//cdn.example/pic.jpg" {
		t.Errorf("Expected img src extracted case-insensitively, got: %s", got)
	}

	if got := firstImgSrc("<p>no images here</p>"); got != "" {
		t.Errorf("Expected empty result without img tags, got: %s", got)
	}

	if got := firstImgSrc(""); got != "" {
		t.Errorf("Expected empty result for empty fragment, got: %s", got)
	}
}

func TestExtractImageMediaFirst(t *testing.T) {
	renderer := NewRenderer("https://site.example")
	item := feed.Item{
		Description: `<img src="https://inline.example/ignored.png">`,
		Media: []feed.MediaCandidate{
			{URL: ""},
			{URL: "https://x/1.jpg", Type: "image/jpeg"},
		},
	}

	if got := renderer.extractImage(item); got != "https://x/1.jpg" {
		t.Errorf("Expected structured media to win, got: %s", got)
	}
}

func TestExtractImageFromInlineTag(t *testing.T) {
	renderer := NewRenderer("https://site.example")
	item := feed.Item{
		Description: "plain text only",
		Content:     `<div><img src="/attachments/pic.png"></div>`,
	}

	if got := renderer.extractImage(item); got != "https://site.example/attachments/pic.png" {
		t.Errorf("Expected inline image normalized against site base, got: %s", got)
	}
}

func TestExtractImageNone(t *testing.T) {
	renderer := NewRenderer("https://site.example")

	if got := renderer.extractImage(feed.Item{Description: "text"}); got != "" {
		t.Errorf("Expected no image, got: %s", got)
	}
}
