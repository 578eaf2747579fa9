// Package summary renders the end-of-day report as Markdown or as an HTML
// email. Rendering is pure: the same Day always yields the same output.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/points"
)

// DateLayout matches the long US date used in headings and subjects.
const DateLayout = "Monday, January 2, 2006"

// Day is everything a summary reports on.
type Day struct {
	Date     time.Time
	UserName string
	Tasks    []lists.Task
	Backlog  []lists.Task
	Thoughts []lists.Thought
	Total    int
	History  []points.Entry
}

func (d Day) Completed() []lists.Task { return partition(d.Tasks, true) }

func (d Day) Pending() []lists.Task { return partition(d.Tasks, false) }

func (d Day) Level() points.LevelInfo { return points.LevelFor(d.Total) }

func (d Day) Breakdown() points.Breakdown { return points.Categorize(d.History) }

func (d Day) DateString() string { return d.Date.Format(DateLayout) }

func partition(ts []lists.Task, completed bool) []lists.Task {
	var out []lists.Task
	for _, t := range ts {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

// Markdown renders the plain list summary used for copy and download.
func Markdown(d Day) string {
	lvl := d.Level()
	br := d.Breakdown()
	completed := d.Completed()
	pending := d.Pending()

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("# Daily Summary - %s", d.DateString())
	line("")
	line("Hey %s 👋", nameOr(d.UserName, "Friend"))
	line("")
	line("## Points")
	line("- Level: %s %s", lvl.Current.Name, lvl.Current.Emoji)
	line("- Total: %d", d.Total)
	if lvl.Next != nil {
		line("- %d points to reach %s", lvl.ToNext, lvl.Next.Name)
	} else {
		line("- Max level reached 🎉")
	}
	line("")
	line("### Breakdown")
	line("- Tasks: %d", br.Tasks)
	line("- Wellness: %d", br.Wellness)
	line("- Focus: %d", br.Focus)
	line("- Other: %d", br.Other)
	line("")

	line("## Completed Tasks (%d)", len(completed))
	if len(completed) == 0 {
		line("- None yet - tomorrow is a new day!")
	}
	for _, t := range completed {
		line("- [x] %s", t.Text)
	}
	line("")

	line("## Pending Tasks (%d)", len(pending))
	if len(pending) == 0 {
		line("- Nothing pending - nice work!")
	}
	for _, t := range pending {
		line("- [ ] %s", t.Text)
	}
	line("")

	line("## Brain Dump (%d)", len(d.Thoughts))
	if len(d.Thoughts) == 0 {
		line("- No notes captured.")
	}
	for _, th := range d.Thoughts {
		line("- %s", th.Text)
	}
	line("")
	b.WriteString("Keep going - your brain is unique, not broken. 💚")
	return b.String()
}

// Subject is the email subject line for d.
func Subject(d Day) string {
	return "🌙 Your Daily Summary - " + d.DateString()
}

// FileName is the download name for the Markdown summary of d.
func FileName(d Day) string {
	return "jast-daily-summary-" + d.Date.Format("2006-01-02") + ".md"
}
