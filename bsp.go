// Package bsp reads the entity lump of 17-lump level files and measures how
// much room each deathmatch spawn point has before the edge of the map.
// Only the lump directory and the entity lump are decoded; the rest of the
// level geometry is never touched.
package bsp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Directory layout
const (
	NumLumps      = 17
	LumpEntrySize = 8
	HeaderSize    = 4 + NumLumps*LumpEntrySize
)

// Lump indexes
const (
	LumpEntities = 0
	LumpModels   = 14
)

var (
	// ErrTruncatedFile is returned when the header or a lump runs past the end of the file.
	ErrTruncatedFile = errors.New("truncated file")

	// ErrLumpIndex is returned for lump indexes outside [0, NumLumps).
	ErrLumpIndex = errors.New("lump index out of range")

	// ErrBadLump is returned when a directory entry holds a negative offset or length.
	ErrBadLump = errors.New("bad lump entry")
)

// On-disk directory entry. Both fields are little-endian.
type binLumpEntry struct {
	Offset int32
	Length int32
}

// LumpInfo locates one lump. Offset and Length are relative to the start of the file.
type LumpInfo struct {
	Index  int
	Offset int64
	Length int64
}

// ReadLumpInfo reads the directory entry for lump index. Entry i lives at
// HeaderSize + i*LumpEntrySize; the leading 4-byte tag is not checked.
func ReadLumpInfo(r io.ReadSeeker, index int) (LumpInfo, error) {
	if index < 0 || index >= NumLumps {
		return LumpInfo{}, fmt.Errorf("%w: %d", ErrLumpIndex, index)
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return LumpInfo{}, err
	}
	if size < HeaderSize {
		return LumpInfo{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncatedFile, size, HeaderSize)
	}

	pos := int64(HeaderSize + index*LumpEntrySize)
	if err := seek(r, pos); err != nil {
		return LumpInfo{}, err
	}
	var entry binLumpEntry
	if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return LumpInfo{}, fmt.Errorf("%w: lump %d entry at %d", ErrTruncatedFile, index, pos)
		}
		return LumpInfo{}, err
	}

	return LumpInfo{Index: index, Offset: int64(entry.Offset), Length: int64(entry.Length)}, nil
}

// ReadLump reads the bytes of a lump.
func ReadLump(r io.ReadSeeker, info LumpInfo) ([]byte, error) {
	if info.Offset < 0 || info.Length < 0 {
		return nil, fmt.Errorf("%w: lump %d offset %d length %d", ErrBadLump, info.Index, info.Offset, info.Length)
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if info.Offset+info.Length > size {
		return nil, fmt.Errorf("%w: lump %d wants %d bytes at %d, file has %d", ErrTruncatedFile, info.Index, info.Length, info.Offset, size)
	}
	if err := seek(r, info.Offset); err != nil {
		return nil, err
	}
	lump := make([]byte, info.Length)
	n, err := io.ReadFull(r, lump)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: lump %d wants %d bytes at %d, got %d", ErrTruncatedFile, info.Index, info.Length, info.Offset, n)
		}
		return nil, err
	}
	return lump, nil
}

// ReadEntityLump reads the raw entity text lump.
func ReadEntityLump(r io.ReadSeeker) ([]byte, error) {
	info, err := ReadLumpInfo(r, LumpEntities)
	if err != nil {
		return nil, err
	}
	logger.Debug("entity lump located", "offset", info.Offset, "length", info.Length)
	return ReadLump(r, info)
}

// ProcessMap runs the whole pipeline for one map stream and returns its report.
// A map without spawn points gives an empty report, not an error.
func ProcessMap(label string, r io.ReadSeeker, dec Decoding) (MapReport, error) {
	logger.Debug("processing spawn points", "map", label)

	data, err := ReadEntityLump(r)
	if err != nil {
		return MapReport{}, err
	}
	points := ParseEntities(data, dec)
	if len(points) == 0 {
		logger.Debug("no spawn points found in map, skipped", "map", label)
	}
	return BuildReport(label, points), nil
}

// ProcessFile opens a map file on disk and runs ProcessMap on it.
func ProcessFile(label, filename string, dec Decoding) (MapReport, error) {
	file, err := os.Open(filename)
	if err != nil {
		return MapReport{}, err
	}
	defer file.Close()
	return ProcessMap(label, file, dec)
}

// FormatLabel builds the display label for the n-th map of a run.
func FormatLabel(n int, name string) string {
	return fmt.Sprintf("Map %d - %s", n, name)
}

// seek
func seek(r io.Seeker, offset int64) error {
	off, err := r.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}
	if off != offset {
		return fmt.Errorf("seek failed")
	}
	return nil
}
