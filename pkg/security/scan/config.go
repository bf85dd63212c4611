package scan

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ScanConfig is the serialized configuration of a scan attached to a test step.
type ScanConfig struct {
	// Type is the type identifier of the scan factory.
	Type string `json:"type" yaml:"type"`

	// Name is an optional user-facing label for this configured scan.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Settings holds scan specific settings; keys follow the json names of
	// the factory's settings struct.
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// ScanType implements Config.
func (c *ScanConfig) ScanType() string {
	return c.Type
}

// Decode decodes Settings into target, which must be a pointer. Keys not
// present in target are rejected so that misspelled settings do not go
// unnoticed.
func (c *ScanConfig) Decode(target any) error {
	if target == nil {
		return errors.New("decode target must not be nil")
	}

	// map targets accept anything
	if m, ok := target.(*map[string]any); ok {
		if *m == nil {
			*m = make(map[string]any, len(c.Settings))
		}

		for k, v := range c.Settings {
			(*m)[k] = v
		}

		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           target,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("creating settings decoder: %w", err)
	}

	if err := decoder.Decode(c.Settings); err != nil {
		return fmt.Errorf("decoding settings of %q: %w", c.Type, err)
	}

	return nil
}
