package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Decode reads a project in the given format. Fields missing from the
// input keep the defaults of New. An empty input or one without a scene
// section yields ErrNoScene.
func Decode(r io.Reader, format Format) (*Project, error) {
	p := New()

	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(p)
	case YAML:
		err = yaml.NewDecoder(r).Decode(p)
	case TOML:
		err = toml.NewDecoder(r).Decode(p)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, format)
	}
	if errors.Is(err, io.EOF) {
		return nil, ErrNoScene
	}
	if err != nil {
		return nil, fmt.Errorf("project: decode %s: %w", format, err)
	}
	if p.Scene == nil {
		return nil, ErrNoScene
	}
	return p, nil
}

// Encode writes p in the given format.
func Encode(w io.Writer, p *Project, format Format) error {
	var err error
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(p)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(p); err == nil {
			err = enc.Close()
		}
	case TOML:
		err = toml.NewEncoder(w).Encode(p)
	default:
		return fmt.Errorf("%w: %s", ErrFormat, format)
	}
	if err != nil {
		return fmt.Errorf("project: encode %s: %w", format, err)
	}
	return nil
}
