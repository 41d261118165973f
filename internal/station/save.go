package station

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const saveFormatVersion = 1

type savedSim struct {
	FormatVersion int  `json:"format_version"`
	Sim           *Sim `json:"sim"`
}

// SaveSim writes the running sim to disk. The write goes through a temp file
// in the target directory so a crash mid-save never leaves a torn file.
func SaveSim(path string, s *Sim) error {
	if s == nil {
		return fmt.Errorf("nothing to save")
	}

	payload := savedSim{FormatVersion: saveFormatVersion, Sim: s}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "save-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	cleanup = false
	return nil
}

// LoadSim restores a saved sim and reattaches the runtime-only pieces the
// JSON round trip drops: the element catalog and the id counter.
func LoadSim(path string) (*Sim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSim(data)
}

// DecodeSim is LoadSim for callers that manage the file read themselves,
// such as frontends that cap save file sizes.
func DecodeSim(data []byte) (*Sim, error) {
	var payload savedSim
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse save: %w", err)
	}
	if payload.FormatVersion > saveFormatVersion {
		return nil, fmt.Errorf("save format %d is newer than supported %d", payload.FormatVersion, saveFormatVersion)
	}
	if payload.Sim == nil {
		return nil, fmt.Errorf("save has no sim payload")
	}

	sim := payload.Sim
	sim.catalog = NewCatalog()
	for _, entity := range sim.Entities {
		if entity.ID > sim.nextID {
			sim.nextID = entity.ID
		}
	}
	return sim, nil
}
