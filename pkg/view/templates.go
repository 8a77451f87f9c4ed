package view

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// DataKey is the response slot the index template renders.
const DataKey = "dispatch"

// MessageKey is the response slot the error template renders.
const MessageKey = "message"

// Index renders the dispatch result.
func Index(v *View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderValue(ctx, w, v.Data(DataKey))
	})
}

// Error renders a single message line.
func Error(v *View) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		msg, _ := v.Data(MessageKey).(string)
		_, err := io.WriteString(w, msg)
		return err
	})
}

// Table renders rows as aligned columns under a header.
func Table(header []string, rows [][]string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		widths := make([]int, len(header))
		for i, h := range header {
			widths[i] = len(h)
		}
		for _, row := range rows {
			for i := range min(len(row), len(widths)) {
				widths[i] = max(widths[i], len(row[i]))
			}
		}

		var b strings.Builder
		line := func(cells []string) {
			for i := range widths {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				if i == len(widths)-1 {
					b.WriteString(cell)
					break
				}
				fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
			}
			b.WriteByte('\n')
		}

		line(header)
		for _, row := range rows {
			line(row)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func renderValue(ctx context.Context, w io.Writer, val any) error {
	switch x := val.(type) {
	case nil:
		return nil
	case templ.Component:
		return x.Render(ctx, w)
	case string:
		_, err := io.WriteString(w, x)
		return err
	case fmt.Stringer:
		_, err := io.WriteString(w, x.String())
		return err
	case []string:
		_, err := io.WriteString(w, strings.Join(x, "\n"))
		return err
	case map[string]string:
		var b strings.Builder
		for i, k := range slices.Sorted(maps.Keys(x)) {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s: %s", k, x[k])
		}
		_, err := io.WriteString(w, b.String())
		return err
	default:
		_, err := fmt.Fprintf(w, "%v", x)
		return err
	}
}
