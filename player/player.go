// Package player launches an external media player for a resolved stream link.
package player

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/source"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Player builds the command line of one backend.
type Player struct {
	name   string
	binary string
	args   func(link *source.StreamLink, title, target string) []string
}

var players = map[string]*Player{
	"mpv":  MPV,
	"iina": IINA,
	"vlc":  VLC,
}

// Available lists the supported player names.
func Available() []string {
	names := lo.Keys(players)
	sort.Strings(names)
	return names
}

// New returns the player registered under name.
func New(name string) (*Player, error) {
	p, ok := players[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown player %q, available: %s", name, strings.Join(Available(), ", "))
	}
	return p, nil
}

// Default returns the configured player.
func Default() (*Player, error) {
	return New(viper.GetString(key.Player))
}

func (p *Player) Name() string {
	return p.name
}

// Binary is the executable the player runs.
func (p *Player) Binary() string {
	return p.binary
}

// Command returns the process that plays link. The process is not started.
func (p *Player) Command(ctx context.Context, link *source.StreamLink, title string) (*exec.Cmd, error) {
	target, err := sanitizeMediaTarget(link.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.binary, p.args(link, sanitizeTitle(title), target)...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Cancel = func() error {
		return killProcess(cmd)
	}
	return cmd, nil
}

// Play runs the player and waits for it to exit.
func (p *Player) Play(ctx context.Context, link *source.StreamLink, title string) error {
	cmd, err := p.Command(ctx, link, title)
	if err != nil {
		return err
	}

	log.Infof("playing %s with %s", link.URL, p.name)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	return nil
}

// headerFields joins headers as "Key: value" pairs in key order, escaping commas in values.
func headerFields(headers map[string]string) string {
	keys := lo.Keys(headers)
	sort.Strings(keys)

	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		return fmt.Sprintf("%s: %s", k, strings.ReplaceAll(headers[k], ",", "%2C"))
	}), ",")
}

// sanitizeMediaTarget rejects values a player could read as a flag.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
