// Package cache persists built hierarchies between runs: the tree itself
// (for change tracking against the previous load) and the color table (so
// category colors stay stable across sessions, not just within one).
package cache

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lumipallolabs/corpusmap/internal/model"
	"github.com/lumipallolabs/corpusmap/internal/palette"
)

// Snapshot is what gets persisted for one dataset
type Snapshot struct {
	Root   model.SnapshotNode
	Colors map[string]string
}

// Cache handles saving and loading hierarchy snapshots
type Cache struct {
	dir string
}

// New creates a cache in the given directory
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// DefaultDir returns the default cache directory
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".corpusmap"
	}
	return filepath.Join(home, ".corpusmap", "cache")
}

// Save writes a snapshot for the named dataset
func (c *Cache) Save(dataset string, root *model.Node, colors palette.Table) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.gob.gz",
		sanitize(dataset),
		time.Now().Format("2006-01-02_150405"))

	path := filepath.Join(c.dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	defer gzWriter.Close()

	snap := Snapshot{
		Root:   root.ToSnapshot(),
		Colors: colors,
	}

	encoder := gob.NewEncoder(gzWriter)
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return nil
}

// LoadLatest loads the most recent snapshot for a dataset
func (c *Cache) LoadLatest(dataset string) (*model.Node, palette.Table, error) {
	pattern := filepath.Join(c.dir, fmt.Sprintf("%s_*.gob.gz", sanitize(dataset)))
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob: %w", err)
	}

	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no snapshot found for dataset %s", dataset)
	}

	// Sort to get latest (filenames include timestamp)
	sort.Strings(files)
	latest := files[len(files)-1]

	file, err := os.Open(latest)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer gzReader.Close()

	var snap Snapshot
	decoder := gob.NewDecoder(gzReader)
	if err := decoder.Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}

	return model.FromSnapshot(snap.Root), palette.Table(snap.Colors), nil
}

// Timestamp returns the timestamp of the latest snapshot
func (c *Cache) Timestamp(dataset string) (time.Time, error) {
	pattern := filepath.Join(c.dir, fmt.Sprintf("%s_*.gob.gz", sanitize(dataset)))
	files, err := filepath.Glob(pattern)
	if err != nil {
		return time.Time{}, fmt.Errorf("glob error: %w", err)
	}
	if len(files) == 0 {
		return time.Time{}, fmt.Errorf("no snapshot")
	}

	sort.Strings(files)
	latest := files[len(files)-1]

	base := filepath.Base(latest)
	base = strings.TrimSuffix(base, ".gob.gz")
	idx := strings.Index(base, "_")
	if idx < 0 {
		return time.Time{}, fmt.Errorf("invalid filename")
	}

	return time.Parse("2006-01-02_150405", base[idx+1:])
}

// sanitize keeps dataset names safe to use in filenames
func sanitize(dataset string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '.'
		}
	}, dataset)
}
