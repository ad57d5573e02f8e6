// Package constants provides named constants shared across the localint
// codebase. This centralizes defaults so the CLI, config loader, and server
// surfaces agree on them.
package constants

// Simulation defaults applied when neither a scenario file nor a flag
// supplies a value.
const (
	// DefaultSteps is the default trajectory length.
	DefaultSteps = 100

	// DefaultRevision is the default revision protocol name.
	DefaultRevision = "simultaneous"

	// DefaultNumActions is the default number of actions per agent.
	DefaultNumActions = 2
)

// Bounds on accepted simulation parameters. These protect the CLI and
// server surfaces from runaway requests; the core library itself only
// requires non-negative lengths.
const (
	// MaxSteps is the largest trajectory length the tool surfaces accept.
	MaxSteps = 1_000_000

	// MaxAgents is the largest network size the tool surfaces accept.
	MaxAgents = 100_000
)

// Filesystem layout under the user's home directory.
const (
	// ConfigDirName is the dot-directory holding config and run data.
	ConfigDirName = ".localint"

	// ConfigFileName is the YAML config file inside ConfigDirName.
	ConfigFileName = "config.yaml"

	// RunDBFileName is the SQLite run archive inside ConfigDirName.
	RunDBFileName = "runs.db"
)

// ValidExportFormats defines the accepted run export formats.
var ValidExportFormats = map[string]bool{
	"arrow": true,
	"jsonl": true,
	"csv":   true,
}
