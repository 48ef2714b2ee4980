package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML catalog override. Sections present in the file
// replace the built-in defaults wholesale; absent sections keep them.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := Default()
	if len(override.QuestTypes) > 0 {
		c.QuestTypes = override.QuestTypes
	}
	if len(override.Priorities) > 0 {
		c.Priorities = override.Priorities
	}
	if len(override.Levels) > 0 {
		c.Levels = override.Levels
	}
	if len(override.Entitlements) > 0 {
		c.Entitlements = override.Entitlements
	}
	if len(override.Habits) > 0 {
		c.Habits = override.Habits
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
