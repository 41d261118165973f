package locale

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Resolver returns the current-locale template text for a symbolic string id.
// Implementations must behave as pure lookups at call time.
type Resolver interface {
	Resolve(id string) string
}

// Table is the map-backed resolver used for the built-in strings and for
// content-pack overlays. Missing ids resolve to the id itself so gaps stay
// visible in the UI instead of rendering blank lines.
type Table map[string]string

func (t Table) Resolve(id string) string {
	if text, ok := t[id]; ok {
		return text
	}
	return id
}

// Merge returns a new table with overlay entries written over t. Neither
// input table is modified.
func (t Table) Merge(overlay Table) Table {
	out := make(Table, len(t)+len(overlay))
	for id, text := range t {
		out[id] = text
	}
	for id, text := range overlay {
		out[id] = text
	}
	return out
}

const packFormatVersion = 1

type packFile struct {
	FormatVersion int               `json:"format_version"`
	Locale        string            `json:"locale,omitempty"`
	Strings       map[string]string `json:"strings"`
}

// LoadPack reads a string-pack file produced by a content pack. The result is
// an overlay table meant to be merged over English().
func LoadPack(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pack packFile
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse locale pack: %w", err)
	}
	if pack.FormatVersion > packFormatVersion {
		return nil, fmt.Errorf("locale pack format %d is newer than supported %d", pack.FormatVersion, packFormatVersion)
	}
	if len(pack.Strings) == 0 {
		return nil, errors.New("locale pack has no strings")
	}
	return Table(pack.Strings), nil
}

// SavePack writes a table as a pack file, mostly useful for tooling that
// exports translation skeletons.
func SavePack(path, localeName string, t Table) error {
	payload := packFile{FormatVersion: packFormatVersion, Locale: localeName, Strings: t}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
