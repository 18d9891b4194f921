package profile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/dtext/errs"
)

// LoadYAML decodes and validates a profile from YAML. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", errs.ErrInvalidProfile, err)
	}

	return validated(&p)
}

// LoadJSON decodes and validates a profile from JSON. Unknown keys are rejected.
func LoadJSON(r io.Reader) (*Profile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %w", errs.ErrInvalidProfile, err)
	}

	return validated(&p)
}

// LoadFile reads a profile from path, choosing the decoder by extension:
// ".json" is decoded as JSON, anything else as YAML.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(bytes.NewReader(data))
	}

	return LoadYAML(bytes.NewReader(data))
}

// WriteYAML encodes p as YAML to w. The output loads back with LoadYAML.
func (p *Profile) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	return enc.Close()
}

func validated(p *Profile) (*Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}
