// Package stage loads map segments and stacks them into one world layout.
// This package depends on sim but sim does not depend on stage.
package stage

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/stage/formats"
)

//go:embed data
var embedded embed.FS

// CatalogFile is the name of the stage catalogue inside a data root.
const CatalogFile = "stages.yaml"

// ErrStageNotFound is returned for an ID missing from the catalogue.
var ErrStageNotFound = errors.New("stage: not found")

// Loader reads segments and the stage catalogue from a file tree.
// Segment files live anywhere below the root; the catalogue sits at the root.
type Loader struct {
	FS     fs.FS
	Logger *log.Logger // Nil uses the default logger
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root)}
}

// Embedded returns a loader over the built-in stages.
func Embedded() *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // The embed directive guarantees the directory exists.
	}
	return &Loader{FS: sub}
}

// Catalog reads the stage catalogue.
func (l *Loader) Catalog() (formats.Catalog, error) {
	data, err := fs.ReadFile(l.FS, CatalogFile)
	if err != nil {
		return formats.Catalog{}, fmt.Errorf("stage: read catalogue: %w", err)
	}
	c, err := formats.ParseCatalog(data)
	if err != nil {
		return formats.Catalog{}, fmt.Errorf("stage: parse catalogue: %w", err)
	}
	return c, nil
}

// Stage returns the catalogue entry with the given ID.
func (l *Loader) Stage(id string) (formats.Stage, error) {
	c, err := l.Catalog()
	if err != nil {
		return formats.Stage{}, err
	}
	for _, s := range c.Stages {
		if s.ID == id {
			return s, nil
		}
	}
	return formats.Stage{}, fmt.Errorf("%w: %s", ErrStageNotFound, id)
}

// LoadAll scans and parses every segment file.
// Unparseable files are logged and skipped. Results are sorted by ID.
func (l *Loader) LoadAll() ([]formats.Segment, error) {
	return l.loadAll(l.logger())
}

func (l *Loader) loadAll(logger *log.Logger) ([]formats.Segment, error) {
	var segs []formats.Segment

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Base(p) == CatalogFile {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		seg, err := l.LoadFile(p)
		if err != nil {
			logger.Warn("segment file skipped", "file", p, "err", err)
			return nil
		}
		for _, issue := range seg.Issues {
			logger.Warn("segment field ignored, using its default", "file", p, "segment", seg.ID, "issue", issue)
		}
		segs = append(segs, seg)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stage: walk segments: %w", err)
	}

	sort.Slice(segs, func(i, j int) bool {
		return segs[i].ID < segs[j].ID
	})
	return segs, nil
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// LoadFile parses a single segment file.
func (l *Loader) LoadFile(p string) (formats.Segment, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return formats.Segment{}, fmt.Errorf("stage: read %s: %w", p, err)
	}
	seg, err := formats.ParseYAML(data)
	if err != nil {
		return formats.Segment{}, fmt.Errorf("stage: parse %s: %w", p, err)
	}
	return seg, nil
}

// ListIDs returns all segment IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	segs, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(segs))
	for i, s := range segs {
		ids[i] = s.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
