// Package archive finds map streams on disk: loose .bsp files and .bsp
// entries inside .pk3 (zip) archives.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Source is one map that can be opened for reading.
type Source struct {
	// Name is the file path, or "<archive>/<entry>" for archive members.
	Name string
	Open func() (io.ReadSeekCloser, error)
}

// FileSource wraps a map file on disk.
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Open: func() (io.ReadSeekCloser, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

// OpenPK3 lists the maps/*.bsp entries of a pk3 archive. Entries are read into
// memory when opened. An archive without maps gives no sources and no error.
func OpenPK3(path string) ([]Source, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening pk3 %s: %w", path, err)
	}
	defer zr.Close()

	base := filepath.Base(path)
	var sources []Source
	for _, f := range zr.File {
		if !isMapEntry(f.Name) {
			continue
		}
		name := f.Name
		sources = append(sources, Source{
			Name: base + "/" + name,
			Open: func() (io.ReadSeekCloser, error) {
				return readEntry(path, name)
			},
		})
	}
	if len(sources) == 0 {
		slog.Info("pk3 archive does not contain maps folder, skipped", "archive", base)
	}
	return sources, nil
}

func isMapEntry(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "maps/") && strings.HasSuffix(lower, ".bsp")
}

// readEntry reopens the archive and loads one entry into memory. No archive
// handle outlives the call.
func readEntry(path, name string) (io.ReadSeekCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == name {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%s not found in %s: %w", name, filepath.Base(path), os.ErrNotExist)
	}

	f, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s in %s: %w", name, filepath.Base(path), err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s in %s: %w", name, filepath.Base(path), err)
	}
	return nopCloser{bytes.NewReader(data)}, nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

// Discover returns every map under dir: loose .bsp files first, then the maps
// of each .pk3 archive. Both groups are sorted by file name. Archives that
// cannot be read are logged and skipped.
func Discover(dir string) ([]Source, error) {
	bspPaths, err := globSorted(dir, "*.bsp")
	if err != nil {
		return nil, err
	}
	pk3Paths, err := globSorted(dir, "*.pk3")
	if err != nil {
		return nil, err
	}

	sources := make([]Source, 0, len(bspPaths))
	for _, p := range bspPaths {
		slog.Debug("bsp file found", "path", p)
		sources = append(sources, FileSource(p))
	}
	for _, p := range pk3Paths {
		slog.Info("pk3 archive found, extracting maps", "path", p)
		maps, err := OpenPK3(p)
		if err != nil {
			slog.Warn("skipping unreadable pk3 archive", "path", p, "err", err)
			continue
		}
		sources = append(sources, maps...)
	}
	return sources, nil
}

func globSorted(dir, pattern string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
