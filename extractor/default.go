package extractor

import (
	"github.com/go-resty/resty/v2"
)

// Default returns the built-in extractors, most specific first.
func Default(client *resty.Client) *Registry {
	return NewRegistry(
		NewBerkasdrive(client),
		Direct{},
		NewEmbed(client),
	)
}
