// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/anisan-cli/mirai/color"
	"github.com/anisan-cli/mirai/constant"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// Options, when set, lists the only accepted string values.
	Options []string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Parse converts command line values to the type of the default value.
func (f *Field) Parse(values []string) (any, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: value is required", f.Key)
	}

	switch f.Value.(type) {
	case string:
		if len(f.Options) > 0 && !lo.Contains(f.Options, values[0]) {
			return nil, fmt.Errorf("%s: invalid value %q, available options are: %s", f.Key, values[0], strings.Join(f.Options, ", "))
		}
		return values[0], nil
	case int:
		n, err := strconv.Atoi(values[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer value: %s", f.Key, values[0])
		}
		if n < 0 {
			return nil, fmt.Errorf("%s: must not be negative", f.Key)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(values[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean value: %s", f.Key, values[0])
		}
		return b, nil
	case []string:
		return values, nil
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Mirai + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.DefaultSources, []string{"anizone"}, "Default sources to use.\nType \"mirai sources list\" to show available sources")
	register(key.AniZoneURL, "https://anizone.to", "Base URL of AniZone")
	register(key.AnimeSailURL, "https://154.26.137.28", "Base URL of AnimeSail")
	register(key.SamehadakuURL, "https://v1.samehadaku.how", "Base URL of Samehadaku")
	register(key.NimegamiURL, "https://nimegami.id", "Base URL of Nimegami")
	register(key.NetworkTimeout, 20, "Request timeout in seconds")
	register(key.NetworkRetries, 0, "Extra attempts for a failed page fetch.\nSites that need retries set their own floor")
	register(key.NetworkRetryWait, 500, "Fixed wait between retries in milliseconds")
	register(key.NetworkUserAgent, constant.UserAgent, "User-Agent header sent to every site")
	register(key.NetworkFingerprint, false, "Dial TLS with a Chrome client hello fingerprint")
	register(key.NetworkCloudflare, true, "Send browser-like headers that pass basic Cloudflare checks")
	register(key.StreamsConcurrency, 5, "Maximum number of mirrors resolved at the same time")
	register(key.LivewireMaxPages, 200, "Maximum number of \"load more\" calls for one AniZone listing")
	register(key.CacheEnabled, false, "Cache search and detail results on disk")
	register(key.CacheTTL, 360, "Lifetime of cached results in minutes")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.SearchSort, "relevance", "Order of merged search results.\nAvailable options are: relevance, source")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Check for a newer release when showing help")
	register(key.Player, "mpv", "Media player to use.\nAvailable options are: mpv, iina, vlc")

	restrict(key.SearchSort, "relevance", "source")
	restrict(key.IconsVariant, "emoji", "kaomoji", "plain", "squares", "nerd")
	restrict(key.LogsLevel, "panic", "fatal", "error", "warn", "info", "debug", "trace")
	restrict(key.Player, "mpv", "iina", "vlc")
}

func restrict(k string, options ...string) {
	f := Default[k]
	f.Options = options
	Default[k] = f
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
