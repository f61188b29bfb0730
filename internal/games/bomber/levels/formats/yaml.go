// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk structure of a level file.
//
//	id: crossroads
//	name: Crossroads
//	layout:
//	  - "#########"
//	  - "#.......#"
//	blocks:
//	  density: 0.25
//	  safe: [[1, 1], [1, 2], [2, 1]]
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Layout   []string          `yaml:"layout"`
	Blocks   YAMLBlocks        `yaml:"blocks"`
	Start    []int             `yaml:"start,omitempty"`
	Enemies  int               `yaml:"enemies,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLBlocks is the destructible seed policy of a level file.
type YAMLBlocks struct {
	Density *float64 `yaml:"density,omitempty"`
	Safe    [][]int  `yaml:"safe,omitempty"`
}

// Level is a parsed level file.
type Level struct {
	ID         string
	Name       string
	Layout     []string
	Density    float64
	HasDensity bool
	Safe       [][2]int
	Start      *[2]int
	Enemies    int
	Metadata   map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level id is required")
	}
	if len(yl.Layout) == 0 {
		return Level{}, fmt.Errorf("level %s has no layout", yl.ID)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Layout:   yl.Layout,
		Enemies:  yl.Enemies,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}
	if yl.Blocks.Density != nil {
		d := *yl.Blocks.Density
		if d < 0 || d > 1 {
			return Level{}, fmt.Errorf("level %s: density %v out of range [0,1]", yl.ID, d)
		}
		level.Density = d
		level.HasDensity = true
	}
	for _, c := range yl.Blocks.Safe {
		if len(c) != 2 {
			return Level{}, fmt.Errorf("level %s: safe cell %v must be [col, row]", yl.ID, c)
		}
		level.Safe = append(level.Safe, [2]int{c[0], c[1]})
	}
	if len(yl.Start) > 0 {
		if len(yl.Start) != 2 {
			return Level{}, fmt.Errorf("level %s: start %v must be [col, row]", yl.ID, yl.Start)
		}
		level.Start = &[2]int{yl.Start[0], yl.Start[1]}
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
