package player

import "github.com/anisan-cli/mirai/source"

// IINA plays through LaunchServices on macOS. IINA forwards options prefixed with --mpv- to its mpv core.
var IINA = &Player{
	name:   "iina",
	binary: "open",
	args: func(link *source.StreamLink, title, target string) []string {
		args := []string{"-W", "-a", "IINA", target, "--args"}
		return append(args, mpvOptions(link, title, "--mpv-")...)
	},
}
