package form

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ReadJSON decodes a sheet from r.
//
// The input must be a JSON object with a "client" object and a "products"
// array:
//
//	{
//	  "client": {"name": "Rodoltte", "id": "3A94F0C1D2"},
//	  "products": [
//	    {"name": "Croissant de almendra", "id": "croissant-almendra"}
//	  ]
//	}
//
// The decoded sheet is validated before it is returned, so callers can rely
// on non-empty names and encodable identifiers.
func ReadJSON(r io.Reader) (*Sheet, error) {
	var s Sheet
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadTOML decodes a sheet from TOML, the same shape as the JSON form:
//
//	[client]
//	name = "Rodoltte"
//	id = "3A94F0C1D2"
//
//	[[products]]
//	name = "Croissant de almendra"
//	id = "croissant-almendra"
func ReadTOML(r io.Reader) (*Sheet, error) {
	var s Sheet
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a sheet file, dispatching on the file extension
// (.json, .toml). The error wraps the underlying cause with the file path
// for context.
func Load(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		s, err := ReadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return s, nil
	case ".toml":
		s, err := ReadTOML(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%s: unsupported sheet format %q (use .json or .toml)", path, ext)
	}
}
