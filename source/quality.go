package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Quality is the vertical resolution of a stream in pixels.
type Quality int

const (
	QualityUnknown Quality = 0
	P360           Quality = 360
	P480           Quality = 480
	P720           Quality = 720
	P1080          Quality = 1080
	P1440          Quality = 1440
	P2160          Quality = 2160
)

func (q Quality) String() string {
	if q == QualityUnknown {
		return "unknown"
	}
	return fmt.Sprintf("%dp", int(q))
}

func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

var qualityAliases = map[string]Quality{
	"4K":     P2160,
	"UHD":    P2160,
	"FULLHD": P1080,
	"FHD":    P1080,
	"MP4HD":  P720,
}

var (
	qualityWithSuffix = regexp.MustCompile(`(?:^|\D)(\d{3,4})\s*[pP]`)
	qualityBare       = regexp.MustCompile(`\b(\d{3,4})\b`)
)

// ParseQuality reads a quality label such as "1080p", "720", "FULLHD" or "4K".
// Labels without a recognizable resolution yield QualityUnknown.
func ParseQuality(label string) Quality {
	for _, word := range strings.Fields(strings.ToUpper(label)) {
		if q, ok := qualityAliases[word]; ok {
			return q
		}
	}

	for _, re := range []*regexp.Regexp{qualityWithSuffix, qualityBare} {
		if m := re.FindStringSubmatch(label); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return Quality(n)
			}
		}
	}

	return QualityUnknown
}
