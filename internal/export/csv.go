package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/summary"
)

var csvHeader = []string{"Section", "ID", "Text", "Status", "Color", "Points", "Timestamp"}

// ToCSV writes one row per task, backlog task, brain dump note and points
// history entry.
func ToCSV(d summary.Day, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, rows := range [][][]string{
		taskRows("today", d.Tasks),
		taskRows("backlog", d.Backlog),
		thoughtRows(d.Thoughts),
	} {
		if err := w.WriteAll(rows); err != nil {
			return err
		}
	}
	for _, e := range d.History {
		row := []string{"points", "", e.Action, "", "", strconv.Itoa(e.Points), stamp(e.Timestamp)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func taskRows(section string, ts []lists.Task) [][]string {
	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []string{section, t.ID, t.Text, status(t), lists.ColorName(t.Color), "", ""})
	}
	return rows
}

func thoughtRows(ths []lists.Thought) [][]string {
	rows := make([][]string, 0, len(ths))
	for _, th := range ths {
		rows = append(rows, []string{"braindump", th.ID, th.Text, "", "", "", stamp(th.Timestamp)})
	}
	return rows
}

func status(t lists.Task) string {
	if t.Completed {
		return "done"
	}
	return "pending"
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}
