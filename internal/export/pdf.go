package export

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/summary"
)

// ToPDF renders a one-page report of d. The core fonts are Latin-1, so
// characters outside cp1252 (emoji among them) are dropped.
func ToPDF(d summary.Day, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(latin(s)) }

	pdf.SetTitle("Daily Summary - "+d.DateString(), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, text("Daily Summary - "+d.DateString()))
	pdf.Ln(12)

	name := d.UserName
	if strings.TrimSpace(name) == "" {
		name = "Friend"
	}
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, text("Hey "+name))
	pdf.Ln(10)

	lvl := d.Level()
	br := d.Breakdown()
	heading(pdf, "Points")
	pdf.Cell(0, 8, text(fmt.Sprintf("Level: %s    Total: %d", lvl.Current.Name, d.Total)))
	pdf.Ln(6)
	if lvl.Next != nil {
		pdf.Cell(0, 8, text(fmt.Sprintf("%d points to reach %s", lvl.ToNext, lvl.Next.Name)))
	} else {
		pdf.Cell(0, 8, "Max level reached")
	}
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Tasks %d  Wellness %d  Focus %d  Other %d", br.Tasks, br.Wellness, br.Focus, br.Other))
	pdf.Ln(10)

	taskSection(pdf, text, "Completed Tasks", d.Completed(), "None yet - tomorrow is a new day!")
	taskSection(pdf, text, "Pending Tasks", d.Pending(), "Nothing pending - nice work!")
	taskSection(pdf, text, "Backlog", d.Backlog, "Backlog is empty.")

	heading(pdf, fmt.Sprintf("Brain Dump (%d)", len(d.Thoughts)))
	if len(d.Thoughts) == 0 {
		pdf.Cell(0, 8, "  - No notes captured.")
		pdf.Ln(8)
	}
	for _, th := range d.Thoughts {
		content := fmt.Sprintf("[%s] %s", th.Timestamp.Local().Format("15:04"), th.Text)
		pdf.MultiCell(0, 8, text(content), "", "", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf file: %w", err)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
}

func taskSection(pdf *fpdf.Fpdf, text func(string) string, title string, ts []lists.Task, empty string) {
	heading(pdf, fmt.Sprintf("%s (%d)", title, len(ts)))
	if len(ts) == 0 {
		pdf.Cell(0, 8, "  - "+empty)
		pdf.Ln(8)
	}
	for _, t := range ts {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		pdf.Cell(0, 8, text(fmt.Sprintf("  %s %s", mark, t.Text)))
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

// latin drops runes the cp1252 core fonts cannot show.
func latin(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF && !strings.ContainsRune("€‚ƒ„…†‡ˆ‰Š‹ŒŽ‘’“”•–—˜™š›œžŸ", r) {
			return -1
		}
		return r
	}, s)
}
