package matcher

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var paramsJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadParams reads Params from a plain JSON file, the same way a tracker
// session's settings are loaded, starting from DefaultParams so a partial
// file only overrides the constants it names.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("matcher: reading params file %s: %w", path, err)
	}
	if err := paramsJSON.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("matcher: parsing params file %s: %w", path, err)
	}
	return p, nil
}

// SaveParams writes p to path as plain (human-editable) JSON, creating or
// truncating the file.
func SaveParams(path string, p Params) error {
	data, err := paramsJSON.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("matcher: marshaling params: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("matcher: writing params file %s: %w", path, err)
	}
	return nil
}
