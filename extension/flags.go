// flags.go defines constants for CLI flag names shared across extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "lock-timeout" -> FlagLockTimeout).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAll     = "all"     // Treat search args as literal tags, all required
	FlagCount   = "count"   // Output count only
	FlagDryRun  = "dry-run" // Validate without writing
	FlagExplain = "explain" // Show how a query parses instead of running it
	FlagForce   = "force"   // Overwrite an existing store or file
	FlagList    = "list"    // List mode
	FlagLocal   = "local"   // Use local (per-directory) scope
	FlagLong    = "long"    // Show tags beside each path
	FlagReverse = "reverse" // Reverse sort order
	FlagTree    = "tree"    // Tree view output

	// String flags

	FlagBackend = "backend" // Store backend ("file" or "sqlite")
	FlagUnder   = "under"   // Restrict results to a path prefix or glob
)
