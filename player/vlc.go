package player

import "github.com/anisan-cli/mirai/source"

// VLC only understands the referer and user agent; other headers are dropped.
var VLC = &Player{
	name:   "vlc",
	binary: "vlc",
	args: func(link *source.StreamLink, title, target string) []string {
		args := []string{"--meta-title=" + title}

		headers := link.RequestHeaders()
		if referer, ok := headers["Referer"]; ok {
			args = append(args, "--http-referrer="+referer)
		}
		if agent, ok := headers["User-Agent"]; ok {
			args = append(args, "--http-user-agent="+agent)
		}

		if len(link.Subtitles) > 0 {
			args = append(args, "--sub-file="+link.Subtitles[0].URL)
		}

		return append(args, target)
	},
}
