// internal/extract/metadata_test.go
package extract

import (
	"testing"

	"github.com/vidproxy/vidproxy/internal/normalize"
)

func TestExtractMetadata(t *testing.T) {
	html := `<html><head>
<meta property="og:title" content=" Page Title ">
<meta property="og:description" content="a description">
<meta property="og:image" content="https://cdn.test/img(1).jpg">
<meta property="og:url" content="https://x.test/videos/a-1">
<meta property="og:type" content="video.other">
<meta property="og:site_name" content="vidsite">
<meta name="twitter:card" content="player">
<meta name="twitter:title" content="tw title">
<meta name="twitter:description" content="tw desc">
<meta name="twitter:image" content="https://cdn.test/img(1).jpg">
</head><body></body></html>`
	md := ExtractMetadata(NewPage(html), normalize.Normalizer{CDNHost: "cdn.test"})

	if md.Title != "Page Title" {
		t.Errorf("title = %q", md.Title)
	}
	if md.Description != "a description" {
		t.Errorf("description = %q", md.Description)
	}
	if md.Image != "https://cdn.test/img%281%29.jpg" {
		t.Errorf("image = %q, want CDN-escaped", md.Image)
	}
	if md.URL != "https://x.test/videos/a-1" {
		t.Errorf("url = %q", md.URL)
	}
	if md.Type != "video.other" {
		t.Errorf("type = %q", md.Type)
	}
	if md.SiteName != "vidsite" {
		t.Errorf("siteName = %q", md.SiteName)
	}
	if md.TwitterCard != "player" || md.TwitterTitle != "tw title" || md.TwitterDescription != "tw desc" {
		t.Errorf("twitter fields = %q/%q/%q", md.TwitterCard, md.TwitterTitle, md.TwitterDescription)
	}
	if md.TwitterImage != "https://cdn.test/img%281%29.jpg" {
		t.Errorf("twitterImage = %q", md.TwitterImage)
	}
}

func TestExtractMetadataEmptyPage(t *testing.T) {
	md := ExtractMetadata(NewPage("<html><head></head><body></body></html>"), normalize.Normalizer{CDNHost: "cdn.test"})
	if md.Title != "" || md.Image != "" || md.TwitterCard != "" {
		t.Fatalf("expected zero metadata, got %+v", md)
	}
}

func TestExtractStreamURL(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"payload mp4File key",
			`<script>{"mp4File":"https:\/\/media.test\/v\/clip.mp4"}</script>`,
			"https://media.test/v/clip.mp4",
		},
		{
			"payload videoUrl key",
			`<script>{"videoUrl":"https://media.test/v/other.mp4"}</script>`,
			"https://media.test/v/other.mp4",
		},
		{
			"video source element",
			`<video><source src="https://media.test/v/dom.mp4" type="video/mp4"></video>`,
			"https://media.test/v/dom.mp4",
		},
		{
			"og:video meta",
			`<html><head><meta property="og:video" content="https://media.test/v/og.mp4"></head></html>`,
			"https://media.test/v/og.mp4",
		},
		{
			"nothing present",
			`<html><body>no media</body></html>`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractStreamURL(NewPage(tt.html)); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
