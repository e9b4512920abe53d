package main

import (
	"github.com/anisan-cli/mirai/cmd"
	"github.com/anisan-cli/mirai/config"
	"github.com/anisan-cli/mirai/internal/cache"
	"github.com/anisan-cli/mirai/log"
	_ "github.com/anisan-cli/mirai/provider/all"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
