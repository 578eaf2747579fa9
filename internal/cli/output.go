package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Alixocracy/jast/internal/lists"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

func newTable(header ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	if len(header) > 0 {
		for i := range header {
			header[i] = bold(header[i])
		}
		tbl.AddRow(header...)
	}
	return tbl
}

func (r *root) printf(format string, a ...any) {
	fmt.Fprintf(r.opts.Out, format, a...)
}

func (r *root) println(a ...any) {
	fmt.Fprintln(r.opts.Out, a...)
}

// shortID is the prefix shown in listings; any unique prefix resolves.
func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

// resolve finds the item named by ref: a 1-based position in items, or a
// unique suffix or prefix of its ID.
func resolve[T lists.Keyed](items []T, ref string) (T, error) {
	var zero T
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return zero, fmt.Errorf("position %d: %w", n, lists.ErrNotFound)
		}
		return items[n-1], nil
	}
	var match []T
	for _, it := range items {
		if id := it.Key(); id == ref || strings.HasPrefix(id, ref) || strings.HasSuffix(id, ref) {
			match = append(match, it)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return zero, fmt.Errorf("%q: %w", ref, lists.ErrNotFound)
	default:
		return zero, fmt.Errorf("%q matches %d items, use more characters", ref, len(match))
	}
}
