package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/games/bomber/levels/formats"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// Catalog is the ordered set of playable levels.
type Catalog struct {
	levels   []Level
	fallback Level
	density  float64
	logger   *log.Logger
}

// NewCatalog creates a catalog holding the built-in levels.
func NewCatalog(width, height int, density float64, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{
		levels:   Builtins(width, height, density),
		fallback: Default(width, height, density),
		density:  density,
		logger:   logger,
	}
}

// Len returns the number of levels in the catalog.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// List returns a copy of the catalog levels in play order.
func (c *Catalog) List() []Level {
	out := make([]Level, len(c.levels))
	copy(out, c.levels)
	return out
}

// Load returns the level at the 0-based index. A missing index falls back
// to the default level and logs a warning; it never fails.
func (c *Catalog) Load(index int) Level {
	if index < 0 || index >= len(c.levels) {
		c.logger.Warn("level not found, using default", "index", index, "available", len(c.levels), "default", c.fallback.ID)
		return c.fallback
	}
	return c.levels[index]
}

// Replace swaps the catalog contents for the given levels. An empty list
// leaves only the default level.
func (c *Catalog) Replace(levels []Level) {
	if len(levels) == 0 {
		c.levels = []Level{c.fallback}
		return
	}
	c.levels = levels
}

// LoadDir appends every valid level file under dir, sorted by file path.
// Invalid files are skipped with a warning. A missing directory is an error.
func (c *Catalog) LoadDir(dir string) (int, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("levels: walking directory %s: %w", dir, err)
	}
	sort.Strings(paths)

	added := 0
	for _, path := range paths {
		level, err := c.LoadFile(path)
		if err != nil {
			c.logger.Warn("skipping level file", "path", path, "error", err)
			continue
		}
		c.levels = append(c.levels, level)
		added++
	}
	return added, nil
}

// LoadFile parses one level file and checks that its layout builds.
func (c *Catalog) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	level := Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Layout:   parsed.Layout,
		Density:  c.density,
		Start:    defaultStart,
		Enemies:  parsed.Enemies,
		FilePath: path,
	}
	if parsed.HasDensity {
		level.Density = parsed.Density
	}
	if parsed.Start != nil {
		level.Start = world.Cell{Col: parsed.Start[0], Row: parsed.Start[1]}
	}
	if len(parsed.Safe) > 0 {
		for _, s := range parsed.Safe {
			level.Safe = append(level.Safe, world.Cell{Col: s[0], Row: s[1]})
		}
	} else {
		level.Safe = DefaultSafe(level.Start)
	}

	g, err := world.FromLayout(level.Layout, 1)
	if err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", path, err)
	}
	if g.HasBlockingTileAt(level.Start.Col, level.Start.Row) {
		return Level{}, fmt.Errorf("levels: %s: start %d,%d is blocked", path, level.Start.Col, level.Start.Row)
	}
	if col, row := g.Width()-2, g.Height()-2; g.HasBlockingTileAt(col, row) {
		return Level{}, fmt.Errorf("levels: %s: portal tile %d,%d is blocked", path, col, row)
	}
	return level, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
