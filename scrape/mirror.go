package scrape

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/source"
)

var (
	// ErrNoIframe is returned when a decoded mirror carries no iframe source.
	ErrNoIframe = errors.New("mirror has no iframe")

	// ErrBadEncoding is returned when a mirror descriptor is not base64.
	ErrBadEncoding = errors.New("mirror is not base64")
)

// Mirror is one alternative host of an episode.
type Mirror struct {
	// Label is the text the site shows for the mirror, usually a quality.
	Label string
	// URL is the player or download URL.
	URL string
}

// Resolver turns a mirror into playable links.
type Resolver func(ctx context.Context, mirror Mirror) ([]*source.StreamLink, error)

// DecodeBase64 accepts the standard and URL alphabets, padded or not.
func DecodeBase64(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	for _, encoding := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if decoded, err := encoding.DecodeString(data); err == nil {
			return decoded, nil
		}
	}
	return nil, ErrBadEncoding
}

// DecodeMirror decodes a base64 HTML snippet and returns the src of its iframe.
func DecodeMirror(data string) (string, error) {
	decoded, err := DecodeBase64(data)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(decoded)))
	if err != nil {
		return "", err
	}

	src, ok := Attr("iframe", "src")(doc.Selection).Get()
	if !ok {
		return "", ErrNoIframe
	}
	return src, nil
}

// Rule routes mirrors whose URL starts with Prefix.
type Rule struct {
	Prefix  string
	Resolve Resolver
}

// Rules classifies mirror URLs by prefix. The first matching rule wins.
type Rules struct {
	rules    []Rule
	fallback Resolver
}

// NewRules builds a rule table that hands unmatched mirrors to fallback.
func NewRules(fallback Resolver, rules ...Rule) *Rules {
	return &Rules{rules: rules, fallback: fallback}
}

// Match returns the resolver for url.
func (r *Rules) Match(url string) Resolver {
	for _, rule := range r.rules {
		if strings.HasPrefix(url, rule.Prefix) {
			return rule.Resolve
		}
	}
	return r.fallback
}

// Resolve dispatches mirror to its matching resolver.
func (r *Rules) Resolve(ctx context.Context, mirror Mirror) ([]*source.StreamLink, error) {
	return r.Match(mirror.URL)(ctx, mirror)
}
