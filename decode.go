package proposals

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ParseInput decodes a YAML or JSON document into an [Input].
func ParseInput(data []byte) (Input, error) {
	return DecodeInput(bytes.NewReader(data))
}

// DecodeInput decodes the first YAML or JSON document read from r into an [Input].
// An empty document yields an empty Input.
//
// Values are kept as decoded; shape checking is left to [Validate].
func DecodeInput(r io.Reader) (Input, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Input{}, nil
		}
		return nil, fmt.Errorf("decode input: %w", err)
	}
	if raw == nil {
		return Input{}, nil
	}
	return Input(raw), nil
}
