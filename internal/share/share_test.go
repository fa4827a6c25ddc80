package share

import (
	"errors"
	"net/url"
	"testing"
)

func TestURL(t *testing.T) {
	tests := []struct {
		platform string
		host     string
		path     string
		param    string
	}{
		{PlatformTwitter, "twitter.com", "/intent/tweet", "text"},
		{PlatformReddit, "reddit.com", "/submit", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			raw, err := URL(tt.platform, "https://alias-buddy.com/?ref=x")
			if err != nil {
				t.Fatalf("URL(%s): %v", tt.platform, err)
			}
			u, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("unparsable link %q: %v", raw, err)
			}
			if u.Host != tt.host || u.Path != tt.path {
				t.Errorf("link = %s", raw)
			}
			if u.Query().Get("url") != "https://alias-buddy.com/?ref=x" {
				t.Errorf("page url not preserved: %s", raw)
			}
			if u.Query().Get(tt.param) == "" {
				t.Errorf("missing %s param: %s", tt.param, raw)
			}
		})
	}
}

func TestURLUnknownPlatform(t *testing.T) {
	if _, err := URL("myspace", "https://x"); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestTwitterURLCreditsAccount(t *testing.T) {
	raw, err := URL(PlatformTwitter, "https://alias-buddy.com")
	if err != nil {
		t.Fatal(err)
	}
	u, _ := url.Parse(raw)
	if got := u.Query().Get("via"); got != TwitterVia {
		t.Errorf("via = %q; want %q", got, TwitterVia)
	}
	if got := u.Query().Get("hashtags"); got != "DevTools,EmailTesting,Privacy,Developer,OpenSource" {
		t.Errorf("hashtags = %q", got)
	}
}
