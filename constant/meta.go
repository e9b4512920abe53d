// Package constant holds the application name, version and fixed protocol values.
package constant

import _ "embed"

const (
	Mirai   = "mirai"
	Version = "0.2.0"

	// UserAgent is sent to every site unless network.user_agent overrides it.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	AcceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
)

// Set through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// runtime.GOOS values the launchers switch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)

//go:embed ascii.txt
var AsciiArtLogo string
