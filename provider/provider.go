// Package provider keeps the registry of site adapters.
//
// Site packages register themselves from init, so importing a site is enough
// to make it available. provider/all imports every built-in site.
package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
)

// Provider is the registration record of a site adapter.
type Provider struct {
	ID   string
	Name string
	Lang string
	// CreateSource builds a ready adapter. It may touch the network.
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

var (
	mu        sync.RWMutex
	providers = make(map[string]*Provider)
)

// Register makes a provider available. It panics on a nil provider or a duplicate ID.
func Register(p *Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil || p.CreateSource == nil {
		panic("provider: Register of nil provider")
	}

	if _, dup := providers[p.ID]; dup {
		panic(fmt.Sprintf("provider: Register called twice for %q", p.ID))
	}

	providers[p.ID] = p
}

// Builtins returns every registered provider ordered by ID.
func Builtins() []*Provider {
	mu.RLock()
	defer mu.RUnlock()

	list := lo.Values(providers)
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

// Get finds a provider by ID or, case-insensitively, by name.
func Get(name string) (*Provider, bool) {
	mu.RLock()
	defer mu.RUnlock()

	if p, ok := providers[name]; ok {
		return p, true
	}

	return lo.Find(lo.Values(providers), func(p *Provider) bool {
		return strings.EqualFold(p.Name, name) || strings.EqualFold(p.ID, name)
	})
}
