package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/points"
)

var testDate = time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC)

func sampleDay() Day {
	return Day{
		Date:     testDate,
		UserName: "Robin",
		Tasks: []lists.Task{
			{ID: "1", Text: "Write report", Completed: true},
			{ID: "2", Text: "Call <dentist>"},
		},
		Thoughts: []lists.Thought{{ID: "t1", Text: "idea: tea & biscuits"}},
		Total:    57,
		History: []points.Entry{
			{Action: points.TaskCompleted, Points: 5},
			{Action: "Drink Water", Points: 1},
			{Action: points.FocusSession, Points: 5},
			{Action: "Imported", Points: 46},
		},
	}
}

func TestMarkdown(t *testing.T) {
	want := strings.Join([]string{
		"# Daily Summary - Monday, March 9, 2026",
		"",
		"Hey Robin 👋",
		"",
		"## Points",
		"- Level: Rising Star ⭐",
		"- Total: 57",
		"- 43 points to reach Achiever",
		"",
		"### Breakdown",
		"- Tasks: 5",
		"- Wellness: 1",
		"- Focus: 5",
		"- Other: 46",
		"",
		"## Completed Tasks (1)",
		"- [x] Write report",
		"",
		"## Pending Tasks (1)",
		"- [ ] Call <dentist>",
		"",
		"## Brain Dump (1)",
		"- idea: tea & biscuits",
		"",
		"Keep going - your brain is unique, not broken. 💚",
	}, "\n")
	assert.Equal(t, want, Markdown(sampleDay()))
}

func TestMarkdownEmptyDay(t *testing.T) {
	md := Markdown(Day{Date: testDate, Total: 600})
	assert.Contains(t, md, "Hey Friend 👋")
	assert.Contains(t, md, "- Level: Master 👑")
	assert.Contains(t, md, "- Max level reached 🎉")
	assert.Contains(t, md, "## Completed Tasks (0)\n- None yet - tomorrow is a new day!")
	assert.Contains(t, md, "## Pending Tasks (0)\n- Nothing pending - nice work!")
	assert.Contains(t, md, "## Brain Dump (0)\n- No notes captured.")
}

func TestMarkdownDeterministic(t *testing.T) {
	d := sampleDay()
	assert.Equal(t, Markdown(d), Markdown(d))
}

func TestHTML(t *testing.T) {
	out, err := HTML(sampleDay())
	require.NoError(t, err)

	assert.Contains(t, out, "Monday, March 9, 2026")
	assert.Contains(t, out, "Hey Robin! 👋")
	assert.Contains(t, out, "57 Points Earned")
	assert.Contains(t, out, "Rising Star · 43 points to reach Achiever")
	assert.Contains(t, out, "Tasks 5 · Wellness 1 · Focus 5 · Other 46")
	assert.Contains(t, out, "✅ Completed Tasks (1)")
	assert.Contains(t, out, "✓ Write report")
	assert.Contains(t, out, "📋 Pending for Tomorrow (1)")
	assert.Contains(t, out, "○ Call &lt;dentist&gt;")
	assert.Contains(t, out, "💭 Brain Dump Notes (1)")
	assert.Contains(t, out, "idea: tea &amp; biscuits")
	assert.NotContains(t, out, "<dentist>")
}

func TestHTMLEmptySections(t *testing.T) {
	out, err := HTML(Day{Date: testDate})
	require.NoError(t, err)
	assert.Contains(t, out, "Hey there! 👋")
	assert.Contains(t, out, "No tasks completed today")
	assert.NotContains(t, out, "Pending for Tomorrow")
	assert.NotContains(t, out, "Brain Dump Notes")
}

func TestSubjectAndFileName(t *testing.T) {
	d := sampleDay()
	assert.Equal(t, "🌙 Your Daily Summary - Monday, March 9, 2026", Subject(d))
	assert.Equal(t, "jast-daily-summary-2026-03-09.md", FileName(d))
}
