package table

import (
	"io"

	"github.com/fatih/color"
)

// Column declares a table column: its header and the formatters applied, in
// order, to the column value.
type Column struct {
	header     string
	formatters []ColumnFormatter
}

// NewColumn creates a column. The header also selects the row field the
// column reads, see Renderer.
func NewColumn(header string) Column {
	return Column{header: header}
}

// JQ appends a jq query to the column's formatters.
func (c Column) JQ(query string) Column {
	return c.Fn(JQFormatter(query))
}

// Fn appends a formatter.
func (c Column) Fn(formatter ColumnFormatter) Column {
	c.formatters = append(c.formatters, formatter)

	return c
}

// Default replaces empty values (nil, "" and empty lists) with placeholder.
func (c Column) Default(placeholder string) Column {
	return c.Fn(func(v any) any {
		if isEmpty(v) {
			return placeholder
		}

		return v
	})
}

// Color paints the column value when when returns true for it. A nil when
// paints every value.
func (c Column) Color(when func(v any) bool, attrs ...color.Attribute) Column {
	paint := color.New(attrs...).SprintFunc()

	return c.Fn(func(v any) any {
		if when != nil && !when(v) {
			return v
		}

		return paint(toString(v))
	})
}

// NewWithColumns creates a renderer from column declarations.
//
// Example:
//
//	renderer := table.NewWithColumns[scans.ScanInfo](os.Stdout,
//	    table.NewColumn("Name"),
//	    table.NewColumn("Type"),
//	    table.NewColumn("Source").Color(isPlugin, color.FgCyan),
//	    table.NewColumn("Description").Default("-"),
//	)
func NewWithColumns[T any](writer io.Writer, columns ...Column) *Renderer[T] {
	headers := make([]string, 0, len(columns))
	options := []Option[T]{WithWriter[T](writer)}

	for _, col := range columns {
		headers = append(headers, col.header)

		if len(col.formatters) > 0 {
			options = append(options, WithFormatter[T](col.header, ChainFormatters(col.formatters...)))
		}
	}

	return NewRenderer[T](append(options, WithHeaders[T](headers...))...)
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
