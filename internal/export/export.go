// Package export writes recorded trajectories and interaction networks in
// interchange formats: Arrow IPC and CSV for analysis tooling, JSONL for
// streaming pipelines, and Graphviz DOT for network rendering.
package export

import (
	"fmt"
	"io"

	"github.com/graphgames/localint/internal/store"
)

// Trajectory export formats.
const (
	FormatArrow = "arrow"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
)

// WriteTrajectory writes a run's trajectory to w in the named format.
func WriteTrajectory(w io.Writer, format string, run store.Run, profiles [][]int) error {
	switch format {
	case FormatArrow:
		return WriteArrow(w, run, profiles)
	case FormatJSONL:
		return WriteJSONL(w, run, profiles)
	case FormatCSV:
		return WriteCSV(w, run, profiles)
	}
	return fmt.Errorf("unknown export format %q (use arrow, jsonl, or csv)", format)
}
