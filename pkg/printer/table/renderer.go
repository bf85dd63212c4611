package table

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/opendatahub-io/secscan/pkg/util"
	"github.com/opendatahub-io/secscan/pkg/util/jq"
)

// ColumnFormatter transforms a column value before it is printed.
type ColumnFormatter func(value any) any

// JQFormatter returns a formatter that evaluates a jq query against the value.
// Query errors are printed in place of the value.
func JQFormatter(query string) ColumnFormatter {
	return func(value any) any {
		result, err := jq.Query[any](value, query)
		if err != nil {
			return fmt.Sprintf("<error: %v>", err)
		}

		return result
	}
}

// ChainFormatters applies formatters in order, feeding each the previous result.
func ChainFormatters(formatters ...ColumnFormatter) ColumnFormatter {
	return func(value any) any {
		for _, f := range formatters {
			value = f(value)
		}

		return value
	}
}

// Renderer accumulates rows of T and prints them as a table.
//
// Rows given as []any are used positionally. Structs and string keyed maps are
// matched to headers by case-insensitive field, json tag or key name.
type Renderer[T any] struct {
	writer     io.Writer
	headers    []string
	formatters map[string]ColumnFormatter
	rows       [][]string
}

// Option configures a Renderer.
type Option[T any] = util.Option[Renderer[T]]

// WithWriter sets the destination of the table.
func WithWriter[T any](w io.Writer) Option[T] {
	return util.FunctionalOption[Renderer[T]](func(r *Renderer[T]) {
		r.writer = w
	})
}

// WithHeaders sets the column headers.
func WithHeaders[T any](headers ...string) Option[T] {
	return util.FunctionalOption[Renderer[T]](func(r *Renderer[T]) {
		r.headers = headers
	})
}

// WithFormatter sets the formatter of a column.
func WithFormatter[T any](column string, formatter ColumnFormatter) Option[T] {
	return util.FunctionalOption[Renderer[T]](func(r *Renderer[T]) {
		r.formatters[strings.ToLower(column)] = formatter
	})
}

// NewRenderer creates a renderer writing to stdout unless WithWriter is given.
func NewRenderer[T any](opts ...Option[T]) *Renderer[T] {
	r := &Renderer[T]{
		writer:     os.Stdout,
		formatters: make(map[string]ColumnFormatter),
	}

	util.ApplyOptions(r, opts...)

	return r
}

// Append adds a row. A formatted column that does not resolve to a field of
// value receives the whole value, so jq formatters can reach into nested data.
func (r *Renderer[T]) Append(value T) error {
	values, found, err := r.extract(value)
	if err != nil {
		return err
	}

	row := make([]string, len(values))

	for i, v := range values {
		if i < len(r.headers) {
			if f, ok := r.formatters[strings.ToLower(r.headers[i])]; ok {
				if !found[i] {
					v = any(value)
				}

				v = f(v)
			}
		}

		row[i] = toString(v)
	}

	r.rows = append(r.rows, row)

	return nil
}

// AppendAll adds a row per value.
func (r *Renderer[T]) AppendAll(values []T) error {
	for _, v := range values {
		if err := r.Append(v); err != nil {
			return err
		}
	}

	return nil
}

// Render writes the table.
func (r *Renderer[T]) Render() error {
	table := tablewriter.NewWriter(r.writer)

	if len(r.headers) > 0 {
		table.Header(r.headers)
	}

	for _, row := range r.rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("appending row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}

func (r *Renderer[T]) extract(value any) ([]any, []bool, error) {
	if values, ok := value.([]any); ok {
		found := make([]bool, len(values))
		for i := range found {
			found[i] = true
		}

		return values, found, nil
	}

	values := make([]any, len(r.headers))
	found := make([]bool, len(r.headers))

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return values, found, nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		for i, h := range r.headers {
			values[i], found[i] = structField(rv, h)
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, nil, fmt.Errorf("unsupported row map key type %s", rv.Type().Key())
		}

		for i, h := range r.headers {
			values[i], found[i] = mapEntry(rv, h)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len() && i < len(values); i++ {
			values[i], found[i] = rv.Index(i).Interface(), true
		}
	default:
		return nil, nil, fmt.Errorf("unsupported row type %T", value)
	}

	return values, found, nil
}

func structField(rv reflect.Value, header string) (any, bool) {
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if strings.EqualFold(sf.Name, header) || (tag != "" && strings.EqualFold(tag, header)) {
			return rv.Field(i).Interface(), true
		}
	}

	return nil, false
}

func mapEntry(rv reflect.Value, header string) (any, bool) {
	iter := rv.MapRange()
	for iter.Next() {
		if strings.EqualFold(iter.Key().String(), header) {
			return iter.Value().Interface(), true
		}
	}

	return nil, false
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
