// Package extractor resolves third-party video hosts into playable links.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/anisan-cli/mirai/source"
)

var (
	// ErrUnsupported is returned when no extractor handles a URL.
	ErrUnsupported = errors.New("no extractor for url")

	// ErrNoVideo is returned when a host page was reached but carried nothing playable.
	ErrNoVideo = errors.New("no video found")
)

// Target is what a site hands to an extractor.
type Target struct {
	// URL of the host page or file.
	URL string
	// Referer the host expects.
	Referer string
	// Label is the site's text for the mirror, often a quality such as "720p".
	Label string
	// Source is the ID of the site the mirror came from.
	Source string
}

// Extractor turns one kind of host URL into links.
type Extractor interface {
	Name() string
	Match(url string) bool
	Extract(ctx context.Context, target Target) ([]*source.StreamLink, error)
}

// Registry holds extractors in registration order. The first match wins.
type Registry struct {
	mu         sync.RWMutex
	extractors []Extractor
}

// NewRegistry returns a registry with the given extractors.
func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// Register appends an extractor, after every one already registered.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, e)
}

// Find returns the first extractor matching url.
func (r *Registry) Find(url string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.extractors {
		if e.Match(url) {
			return e, true
		}
	}
	return nil, false
}

// Extract runs the matching extractor on target.
func (r *Registry) Extract(ctx context.Context, target Target) ([]*source.StreamLink, error) {
	e, ok := r.Find(target.URL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, target.URL)
	}

	links, err := e.Extract(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name(), err)
	}
	return links, nil
}
