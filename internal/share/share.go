// Package share builds social share links for the app
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	Title = "Alias Buddy - Email Alias Generator for Developers"
	Text  = "Found this dev tool! Generate unique email aliases for testing instantly. Works offline, privacy-first."
)

// TwitterVia is the account credited in tweet intents
const TwitterVia = "matheorbt_"

var hashtags = []string{"DevTools", "EmailTesting", "Privacy", "Developer", "OpenSource"}

// Platforms that URL knows how to build links for
const (
	PlatformTwitter = "twitter"
	PlatformReddit  = "reddit"
)

var ErrUnknownPlatform = errors.New("unknown share platform")

// URL returns the share link for platform pointing at pageURL
func URL(platform, pageURL string) (string, error) {
	switch platform {
	case PlatformTwitter:
		q := url.Values{}
		q.Set("text", Text)
		q.Set("url", pageURL)
		q.Set("hashtags", strings.Join(hashtags, ","))
		q.Set("via", TwitterVia)
		return "https://twitter.com/intent/tweet?" + q.Encode(), nil
	case PlatformReddit:
		q := url.Values{}
		q.Set("title", Title)
		q.Set("url", pageURL)
		return "https://reddit.com/submit?" + q.Encode(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
}
