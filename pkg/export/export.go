package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/sectionplanner/core/model"
)

// WriteJSON writes the schedule to w in JSON format.
func WriteJSON(w io.Writer, g model.GeneratedSchedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

// WriteCSV writes one CSV record per block.
func WriteCSV(w io.Writer, g model.GeneratedSchedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "type", "start", "end", "duration_min", "instructional_min", "break_min"}); err != nil {
		return err
	}
	for _, b := range g.ScheduleBlocks {
		rec := []string{
			string(b.DayOfWeek),
			string(b.Type),
			b.StartTime,
			b.EndTime,
			strconv.Itoa(b.DurationMinutes),
			strconv.Itoa(b.InstructionalMinutes),
			strconv.Itoa(b.BreakMinutes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WeeklyMinutes sums the instructional and break minutes of every block.
func WeeklyMinutes(g model.GeneratedSchedule) (instructional, breaks float64) {
	inst := make([]float64, len(g.ScheduleBlocks))
	brk := make([]float64, len(g.ScheduleBlocks))
	for i, b := range g.ScheduleBlocks {
		inst[i] = float64(b.InstructionalMinutes)
		brk[i] = float64(b.BreakMinutes)
	}
	return floats.Sum(inst), floats.Sum(brk)
}
