package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/graphgames/localint/internal/store"
)

// WriteCSV writes the trajectory to w in long format with a step,agent,action
// header, one row per (step, agent) pair.
func WriteCSV(w io.Writer, run store.Run, profiles [][]int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "agent", "action"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for step, profile := range profiles {
		for agent, action := range profile {
			row := []string{
				strconv.Itoa(step),
				strconv.Itoa(agent),
				strconv.Itoa(action),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write step %d: %w", step, err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
