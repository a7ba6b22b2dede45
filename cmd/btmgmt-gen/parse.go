package main

import (
	"errors"
	"fmt"
	"os"
	"unicode"

	"gopkg.in/yaml.v3"
)

// RawCode is one opcode or event code entry.
type RawCode struct {
	Code  uint16 `yaml:"code"`
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
}

// RawTable is the whole opcode definition file.
type RawTable struct {
	Commands []RawCode `yaml:"commands"`
	Events   []RawCode `yaml:"events"`
}

// LoadTable reads and decodes a table from path.
func LoadTable(path string) (*RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTable(data)
}

// ParseTable decodes a table from YAML bytes.
func ParseTable(data []byte) (*RawTable, error) {
	var t RawTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return &t, nil
}

// Validate checks that codes and names are unique within each section and
// that names are exported Go identifiers.
func (t *RawTable) Validate() error {
	if len(t.Commands) == 0 && len(t.Events) == 0 {
		return errors.New("table is empty")
	}
	if err := validateSection("commands", t.Commands); err != nil {
		return err
	}
	return validateSection("events", t.Events)
}

func validateSection(section string, entries []RawCode) error {
	codes := make(map[uint16]string, len(entries))
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name == "" || !unicode.IsUpper(rune(e.Name[0])) {
			return fmt.Errorf("%s: 0x%04x: name %q is not an exported identifier", section, e.Code, e.Name)
		}
		if prev, ok := codes[e.Code]; ok {
			return fmt.Errorf("%s: code 0x%04x used by %s and %s", section, e.Code, prev, e.Name)
		}
		if names[e.Name] {
			return fmt.Errorf("%s: duplicate name %s", section, e.Name)
		}
		if e.Title == "" {
			return fmt.Errorf("%s: %s has no title", section, e.Name)
		}
		codes[e.Code] = e.Name
		names[e.Name] = true
	}
	return nil
}
