package rules

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a versioned rule set from a YAML file, used to override the
// built-in tables. Unknown fields are rejected so a typo in an override file
// cannot silently drop a rule.
func Load(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rule set: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rs RuleSet
	if err := dec.Decode(&rs); err != nil {
		return RuleSet{}, fmt.Errorf("parse rule set %s: %w", path, err)
	}

	if err := rs.Validate(); err != nil {
		return RuleSet{}, err
	}

	return rs, nil
}

// LoadOrDefault returns the rule set at path when path is non-empty,
// otherwise the built-in tables.
func LoadOrDefault(path string) (RuleSet, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
