package player

import (
	"fmt"

	"github.com/anisan-cli/mirai/source"
)

// MPV plays through mpv, passing headers and subtitle tracks as options.
var MPV = &Player{
	name:   "mpv",
	binary: "mpv",
	args: func(link *source.StreamLink, title, target string) []string {
		return append(mpvOptions(link, title, "--"), target)
	},
}

// mpvOptions renders the mpv options for link, each starting with prefix.
func mpvOptions(link *source.StreamLink, title, prefix string) []string {
	options := []string{
		prefix + "force-media-title=" + title,
	}

	if headers := link.RequestHeaders(); len(headers) > 0 {
		options = append(options, prefix+"http-header-fields="+headerFields(headers))
	}

	for _, sub := range link.Subtitles {
		options = append(options, fmt.Sprintf("%ssub-file=%s", prefix, sub.URL))
	}

	return options
}
