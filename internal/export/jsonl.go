package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/graphgames/localint/internal/store"
)

// stepRecord is one JSONL line: the profile recorded at one step.
type stepRecord struct {
	RunID   string `json:"run_id,omitempty"`
	Step    int    `json:"step"`
	Actions []int  `json:"actions"`
}

// WriteJSONL writes the trajectory to w as one JSON object per step.
func WriteJSONL(w io.Writer, run store.Run, profiles [][]int) error {
	enc := json.NewEncoder(w)
	for step, profile := range profiles {
		rec := stepRecord{
			RunID:   run.ID,
			Step:    step,
			Actions: profile,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode step %d: %w", step, err)
		}
	}
	return nil
}
