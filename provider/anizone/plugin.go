package anizone

import (
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/provider"
	"github.com/anisan-cli/mirai/source"
	"github.com/spf13/viper"
)

const (
	ID   = "anizone"
	Name = "AniZone"
	Lang = "en"
)

func init() {
	provider.Register(Plugin())
}

// Plugin returns the registration record of the adapter.
func Plugin() *provider.Provider {
	return &provider.Provider{
		ID:   ID,
		Name: Name,
		Lang: Lang,
		CreateSource: func() (source.Source, error) {
			opts := network.DefaultOptions()
			opts.NoCookieJar = true
			return New(viper.GetString(key.AniZoneURL), network.New(opts)), nil
		},
	}
}
