package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/where"
	"github.com/spf13/viper"
)

// CollectGarbage removes result files untouched for longer than the configured lifetime.
func CollectGarbage() {
	lifetime := time.Duration(viper.GetInt(key.CacheTTL)) * time.Minute
	removed, err := collect(where.Results(), time.Now().Add(-lifetime))
	if err != nil {
		log.Warnf("cache gc: %v", err)
		return
	}
	if removed > 0 {
		log.Infof("cache gc: removed %d files", removed)
	}
}

func collect(dir string, before time.Time) (int, error) {
	fs := filesystem.API()

	var removed int
	err := fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != ".json" || !info.ModTime().Before(before) {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}
