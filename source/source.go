// Package source defines the domain models and interfaces shared by every site adapter.
package source

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a single-entity page lacks the data it must carry, such as a detail page without a title.
var ErrNotFound = errors.New("not found")

// Category is a browsable listing offered by a source.
type Category struct {
	// ID is the opaque value the adapter needs to build the listing request.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
}

// Page is one page of a category listing.
type Page struct {
	Category string          `json:"category"`
	Results  []*SearchResult `json:"results"`
	HasNext  bool            `json:"has_next"`
}

// Source defines the capabilities every site adapter provides.
type Source interface {
	// ID returns the stable identifier of the source.
	ID() string

	// Name returns the display name.
	Name() string

	// Lang returns the ISO 639-1 language of the site.
	Lang() string

	// Categories lists the browsable listings.
	Categories() []Category

	// Browse fetches one page of a category. Network and parse failures yield an empty page.
	Browse(ctx context.Context, category Category, page int) (*Page, error)

	// Search runs a query. A blank query returns no results without touching the network.
	Search(ctx context.Context, query string) ([]*SearchResult, error)

	// Load fetches the detail page and its episodes. A page without a title fails with ErrNotFound.
	Load(ctx context.Context, url string) (*MediaEntry, error)

	// Streams resolves every mirror of an episode. Mirror failures are recorded in the report, not returned.
	Streams(ctx context.Context, data string) (*StreamReport, error)
}

// CategoryByID looks up a category of src.
func CategoryByID(src Source, id string) (Category, bool) {
	for _, c := range src.Categories() {
		if c.ID == id || c.Name == id {
			return c, true
		}
	}
	return Category{}, false
}
