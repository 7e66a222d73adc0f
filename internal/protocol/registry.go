package protocol

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// namesFile is the YAML layout of a registry overlay:
//
//	commands:
//	  "0x40": "Sequencing"
//	subcommands:
//	  "0x03": "DELTA"
//
// Keys accept any strconv base prefix ("0x40", "64").
type namesFile struct {
	Commands    map[string]string `yaml:"commands"`
	Subcommands map[string]string `yaml:"subcommands"`
}

// LoadNames reads a YAML overlay file and returns a new registry with the
// default tables extended by its entries. New protocol-revision codes get
// names this way without any codec change. The returned registry must be
// treated as read-only after this call.
func LoadNames(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read names file: %w", err)
	}

	var f namesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse names file: %w", err)
	}

	reg := NewRegistry()
	for key, name := range f.Commands {
		code, err := parseCode(key)
		if err != nil {
			return nil, fmt.Errorf("invalid command code %q: %w", key, err)
		}
		reg.commands[code] = name
	}
	for key, name := range f.Subcommands {
		code, err := parseCode(key)
		if err != nil {
			return nil, fmt.Errorf("invalid subcommand code %q: %w", key, err)
		}
		reg.subcommands[code] = name
	}

	return reg, nil
}

func parseCode(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}
