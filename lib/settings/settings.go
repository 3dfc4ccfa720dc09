// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package settings persists the viewer adjustments a user makes while
// a flicker code is shown: the bar width and the delay.
//
// The state file is a JSON object of sections; the flicker viewer owns
// the "flicker" section with the keys "barwidth" and "delay" (ms).
// Comments and trailing commas are accepted on read. Only values that
// differ from the defaults are stored: saving a default removes its
// key, and other sections and keys in the file are kept untouched.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/chiptan/lib/config"
)

// Section and key names in the state file.
const (
	Section     = "flicker"
	KeyBarWidth = "barwidth"
	KeyDelay    = "delay"
)

// Values are the persisted viewer adjustments.
type Values struct {
	BarWidth int
	DelayMS  int
}

// document is the whole state file by section. Sections other than
// Section are carried through Save verbatim.
type document map[string]json.RawMessage

// Load reads the state file at path. Keys that are absent take the
// value from defaults; stored values outside the configured bounds are
// clamped. A missing file (or an empty path) yields defaults.
func Load(path string, defaults Values) (Values, error) {
	values := defaults
	if path == "" {
		return values, nil
	}

	state, err := readDocument(path)
	if err != nil {
		return defaults, err
	}

	section, err := state.section(path)
	if err != nil {
		return defaults, err
	}
	if raw, ok := section[KeyBarWidth]; ok {
		if err := json.Unmarshal(raw, &values.BarWidth); err != nil {
			return defaults, fmt.Errorf("state %s: %s.%s: %w", path, Section, KeyBarWidth, err)
		}
		values.BarWidth = config.ClampBarWidth(values.BarWidth)
	}
	if raw, ok := section[KeyDelay]; ok {
		if err := json.Unmarshal(raw, &values.DelayMS); err != nil {
			return defaults, fmt.Errorf("state %s: %s.%s: %w", path, Section, KeyDelay, err)
		}
		values.DelayMS = config.ClampDelayMS(values.DelayMS)
	}
	return values, nil
}

// Save stores values at path. A value equal to its default is removed
// from the file rather than written. The file is replaced atomically;
// its directory is created when needed. An empty path is a no-op.
func Save(path string, values, defaults Values) error {
	if path == "" {
		return nil
	}

	state, err := readDocument(path)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	section, err := state.section(path)
	if err != nil {
		return err
	}
	setOrRemove(section, KeyBarWidth, values.BarWidth, defaults.BarWidth)
	setOrRemove(section, KeyDelay, values.DelayMS, defaults.DelayMS)
	if len(section) == 0 {
		delete(state, Section)
	} else {
		encoded, err := json.Marshal(section)
		if err != nil {
			return fmt.Errorf("encoding state: %w", err)
		}
		state[Section] = encoded
	}

	if len(state) == 0 && !exists {
		return nil
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	data = append(data, '\n')
	return writeAtomic(path, data)
}

func setOrRemove(section map[string]json.RawMessage, key string, value, defaultValue int) {
	if value == defaultValue {
		delete(section, key)
		return
	}
	section[key] = json.RawMessage(fmt.Sprintf("%d", value))
}

// readDocument parses the state file. A missing file is an empty
// document.
func readDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(document), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	state := make(document)
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(stripped, &state); err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", path, err)
	}
	return state, nil
}

// section decodes the flicker section, which is empty when absent.
func (state document) section(path string) (map[string]json.RawMessage, error) {
	section := make(map[string]json.RawMessage)
	raw, ok := state[Section]
	if !ok {
		return section, nil
	}
	if err := json.Unmarshal(raw, &section); err != nil {
		return nil, fmt.Errorf("state %s: section %q: %w", path, Section, err)
	}
	return section, nil
}

func writeAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", directory, err)
	}
	temporary, err := os.CreateTemp(directory, ".state-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary state file: %w", err)
	}
	defer os.Remove(temporary.Name())

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
