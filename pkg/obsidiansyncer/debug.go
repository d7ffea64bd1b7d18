package obsidiansyncer

import "os"

// DebugEnabled reports whether the OBSIDIAN_SYNCER_DEBUG environment
// variable is set to "1". It does not affect pkg/logging, whose debug output
// is gated by the logger's level alone.
var DebugEnabled bool

func init() {
	DebugEnabled = os.Getenv("OBSIDIAN_SYNCER_DEBUG") == "1"
}
