package version

import (
	"context"
	"fmt"

	"github.com/anisan-cli/mirai/color"
	"github.com/anisan-cli/mirai/constant"
	"github.com/anisan-cli/mirai/icon"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/style"
	"github.com/anisan-cli/mirai/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release exists. It is silent when the check is disabled or fails.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(context.Background())
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/anisan-cli/mirai/releases/tag/v"+latest),
	)
}
