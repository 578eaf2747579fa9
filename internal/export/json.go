package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/points"
	"github.com/Alixocracy/jast/internal/summary"
)

type jsonExport struct {
	ExportedAt string          `json:"exported_at"`
	Date       string          `json:"date"`
	UserName   string          `json:"user_name,omitempty"`
	Level      string          `json:"level"`
	Total      int             `json:"total_points"`
	Breakdown  jsonBreakdown   `json:"breakdown"`
	Tasks      []lists.Task    `json:"tasks"`
	Backlog    []lists.Task    `json:"backlog"`
	Thoughts   []lists.Thought `json:"thoughts"`
	History    []points.Entry  `json:"history"`
}

type jsonBreakdown struct {
	Tasks    int `json:"tasks"`
	Wellness int `json:"wellness"`
	Focus    int `json:"focus"`
	Other    int `json:"other"`
}

// ToJSON writes the whole day, including the computed level and points
// breakdown.
func ToJSON(d summary.Day, path string) error {
	br := d.Breakdown()
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Date:       d.Date.Format("2006-01-02"),
		UserName:   d.UserName,
		Level:      d.Level().Current.Name,
		Total:      d.Total,
		Breakdown:  jsonBreakdown{Tasks: br.Tasks, Wellness: br.Wellness, Focus: br.Focus, Other: br.Other},
		Tasks:      orEmpty(d.Tasks),
		Backlog:    orEmpty(d.Backlog),
		Thoughts:   orEmpty(d.Thoughts),
		History:    orEmpty(d.History),
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
