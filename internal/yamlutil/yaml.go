// Package yamlutil is the one place the module decodes YAML: config files
// strictly, lesson front matter leniently.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds YAML input (1 MiB). Config files can be read from any
// path the user names.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func checkBounds(data []byte, v any) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v. Blank input is ErrNilData.
func Unmarshal(data []byte, v any, opts ...yaml.DecodeOption) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrNilData
	}
	if err := checkBounds(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields, so a misspelled config key is an
// error instead of a silent default.
func UnmarshalStrict(data []byte, v any) error {
	return Unmarshal(data, v, yaml.Strict())
}

// UnmarshalHeader decodes a front matter header. A header with nothing
// between its delimiters leaves v untouched and is not an error.
func UnmarshalHeader(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return Unmarshal(data, v)
}
