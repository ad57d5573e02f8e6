package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/graphgames/localint/internal/store"
)

// stepsPerRecord bounds the rows buffered before a record batch is flushed.
const stepsPerRecord = 4096

// TrajectorySchema returns the Arrow schema for exported trajectories: one
// row per (step, agent) pair in long format, with the run's parameters
// attached as schema metadata.
func TrajectorySchema(run store.Run) *arrow.Schema {
	md := arrow.NewMetadata(
		[]string{"run_id", "n", "num_actions", "topology", "revision", "seed"},
		[]string{
			run.ID,
			strconv.Itoa(run.N),
			strconv.Itoa(run.NumActions),
			run.Topology,
			run.Revision,
			strconv.FormatInt(run.Seed, 10),
		},
	)
	return arrow.NewSchema([]arrow.Field{
		{Name: "step", Type: arrow.PrimitiveTypes.Int64},
		{Name: "agent", Type: arrow.PrimitiveTypes.Int64},
		{Name: "action", Type: arrow.PrimitiveTypes.Int64},
	}, &md)
}

// WriteArrow writes the trajectory to w as an Arrow IPC file.
func WriteArrow(w io.Writer, run store.Run, profiles [][]int) error {
	schema := TrajectorySchema(run)

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return fmt.Errorf("failed to open arrow writer: %w", err)
	}

	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	stepCol := b.Field(0).(*array.Int64Builder)
	agentCol := b.Field(1).(*array.Int64Builder)
	actionCol := b.Field(2).(*array.Int64Builder)

	flush := func() error {
		if stepCol.Len() == 0 {
			return nil
		}
		rec := b.NewRecord()
		defer rec.Release()
		if err := fw.Write(rec); err != nil {
			return fmt.Errorf("failed to write record batch: %w", err)
		}
		return nil
	}

	buffered := 0
	for step, profile := range profiles {
		for agent, action := range profile {
			stepCol.Append(int64(step))
			agentCol.Append(int64(agent))
			actionCol.Append(int64(action))
		}
		buffered++
		if buffered == stepsPerRecord {
			if err := flush(); err != nil {
				fw.Close()
				return err
			}
			buffered = 0
		}
	}
	if err := flush(); err != nil {
		fw.Close()
		return err
	}

	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to finalize arrow file: %w", err)
	}
	return nil
}
