// Package version checks for newer releases.
package version

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/network"
	"github.com/anisan-cli/mirai/where"
	"github.com/metafates/gache"
)

const requestTimeout = 5 * time.Second

// releasesURL points at the latest release of the project.
var releasesURL = "https://api.github.com/repos/anisan-cli/mirai/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version without the "v" prefix.
// The answer is cached for two days.
func Latest(ctx context.Context) (string, error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	opts := network.DefaultOptions()
	opts.Timeout = requestTimeout

	var release struct {
		TagName string `json:"tag_name"`
	}

	res, err := network.New(opts).R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&release).
		Get(releasesURL)
	if err != nil {
		return "", err
	}

	if err := network.Check(res); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher.Set(ver)
	return ver, nil
}
