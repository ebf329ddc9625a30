// Package all imports all core genie extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/genie/extension/core"
	_ "github.com/jpl-au/genie/extension/search"
	_ "github.com/jpl-au/genie/extension/tag"
	_ "github.com/jpl-au/genie/extension/transfer"
)
