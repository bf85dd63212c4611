// Package ui builds configuration forms for security scans.
//
// A DialogBuilder turns the typed settings of a scan factory into a Form: a
// flat, ordered list of fields with their kind, default and help text. Front
// ends (the CLI, or any graphical host) render the form however they like.
package ui

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
)

// FieldKind is the input widget a field needs.
type FieldKind string

const (
	FieldText    FieldKind = "text"
	FieldNumber  FieldKind = "number"
	FieldBoolean FieldKind = "boolean"
	FieldList    FieldKind = "list"
	FieldMap     FieldKind = "map"
)

// Field is a single configurable setting.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Default     any       `json:"default,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Form is the configuration form of one scan.
type Form struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Field returns the field with the given name.
func (f *Form) Field(name string) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld, true
		}
	}

	return Field{}, false
}

// DialogBuilder builds configuration forms. It holds no state; the zero value
// is ready to use.
type DialogBuilder struct{}

// NewDialogBuilder returns a new builder.
func NewDialogBuilder() *DialogBuilder {
	return &DialogBuilder{}
}

// Build creates the form for settings, which must be a struct, a pointer to a
// struct or a map with string keys. Struct fields are named after their json
// tag and documented by their description tag; map entries are sorted by key.
func (b *DialogBuilder) Build(title string, settings any) (*Form, error) {
	if title == "" {
		return nil, errors.New("form title must not be empty")
	}

	form := &Form{
		Title:  title,
		Fields: make([]Field, 0),
	}

	if settings == nil {
		return form, nil
	}

	rv := reflect.ValueOf(settings)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return form, nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		form.Fields = structFields(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported settings map key type %s", rv.Type().Key())
		}

		form.Fields = mapFields(rv)
	default:
		return nil, fmt.Errorf("unsupported settings type %T", settings)
	}

	return form, nil
}

func structFields(rv reflect.Value) []Field {
	rt := rv.Type()
	fields := make([]Field, 0, rt.NumField())

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := fieldName(sf)
		if name == "-" {
			continue
		}

		fields = append(fields, Field{
			Name:        name,
			Label:       label(name),
			Kind:        kindOf(sf.Type),
			Default:     rv.Field(i).Interface(),
			Description: sf.Tag.Get("description"),
		})
	}

	return fields
}

func mapFields(rv reflect.Value) []Field {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}

	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))

	for _, k := range keys {
		v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))

		kind := FieldText
		var def any

		if v.IsValid() && !(v.Kind() == reflect.Interface && v.IsNil()) {
			def = v.Interface()
			kind = kindOf(reflect.TypeOf(def))
		}

		fields = append(fields, Field{
			Name:    k,
			Label:   label(k),
			Kind:    kind,
			Default: def,
		})
	}

	return fields
}

func fieldName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}

	return name
}

func kindOf(t reflect.Type) FieldKind {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	//nolint:exhaustive // everything else is edited as text
	switch t.Kind() {
	case reflect.Bool:
		return FieldBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return FieldNumber
	case reflect.Slice, reflect.Array:
		return FieldList
	case reflect.Map, reflect.Struct:
		return FieldMap
	default:
		return FieldText
	}
}

// label turns "maxPayloadSize" into "Max Payload Size".
func label(name string) string {
	var sb strings.Builder

	for i, r := range name {
		switch {
		case i == 0:
			sb.WriteRune(unicode.ToUpper(r))
		case r == '_' || r == '-':
			sb.WriteRune(' ')
		case unicode.IsUpper(r):
			sb.WriteRune(' ')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
