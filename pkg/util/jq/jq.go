package jq

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/itchyny/gojq"
)

// mapper is implemented by values that expose a jq-friendly view of themselves,
// such as test steps.
type mapper interface {
	AsMap() map[string]any
}

// convertValue converts a value to a JQ-compatible format.
// Values exposing AsMap are queried through that view, maps are passed through
// directly and everything else is normalized with a JSON round trip.
func convertValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	if v, ok := value.(mapper); ok {
		return v.AsMap(), nil
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Map:
		if m, ok := value.(map[string]any); ok {
			return m, nil
		}
	case reflect.Slice:
		// []byte still goes through JSON
		if _, isByteSlice := value.([]byte); !isByteSlice {
			slice := make([]any, rv.Len())
			for i := range rv.Len() {
				elem, err := convertValue(rv.Index(i).Interface())
				if err != nil {
					return nil, err
				}

				slice[i] = elem
			}

			return slice, nil
		}
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	}

	var normalizedValue any

	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, &normalizedValue); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return normalizedValue, nil
}

// Compile parses and compiles a jq expression so that it can be evaluated many
// times without re-parsing.
func Compile(jqQuery string) (*gojq.Code, error) {
	parsed, err := gojq.Parse(jqQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jq query: %w", err)
	}

	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq query: %w", err)
	}

	return code, nil
}

// Query executes a JQ query against the provided value and returns the first result
// cast to type T. Returns an error if the result cannot be cast to T.
// When the query returns nil/null, returns the zero value of T.
func Query[T any](value any, jqQuery string) (T, error) {
	var zero T

	code, err := Compile(jqQuery)
	if err != nil {
		return zero, err
	}

	return Run[T](code, value)
}

// Run evaluates a compiled query against value and returns the first result
// cast to type T, with the same semantics as Query.
func Run[T any](code *gojq.Code, value any) (T, error) {
	var zero T

	normalizedValue, err := convertValue(value)
	if err != nil {
		return zero, err
	}

	iter := code.Run(normalizedValue)

	result, ok := iter.Next()
	if !ok {
		return zero, nil
	}

	if err, isErr := result.(error); isErr {
		return zero, fmt.Errorf("jq query error: %w", err)
	}

	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("query result type mismatch: expected %T, got %T (value: %v)",
			zero, result, result)
	}

	return typed, nil
}
