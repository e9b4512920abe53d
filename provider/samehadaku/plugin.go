package samehadaku

import (
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/provider"
	"github.com/anisan-cli/mirai/source"
	"github.com/spf13/viper"
)

const (
	ID   = "samehadaku"
	Name = "Samehadaku"
	Lang = "id"
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
			return New(viper.GetString(key.SamehadakuURL)), nil
		},
	}
}
