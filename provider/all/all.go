// Package all registers every built-in site adapter.
package all

import (
	_ "github.com/anisan-cli/mirai/provider/animesail"
	_ "github.com/anisan-cli/mirai/provider/anizone"
	_ "github.com/anisan-cli/mirai/provider/nimegami"
	_ "github.com/anisan-cli/mirai/provider/samehadaku"
)
