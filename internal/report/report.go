// Package report renders measured maps into a document.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stuarthighley/bsp"
)

// Title heads every document.
const Title = "Vertice (Quake III Map Boundary Analysis Tool)"

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Document is everything one run produces.
type Document struct {
	Title       string          `yaml:"title"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	Maps        []bsp.MapReport `yaml:"maps"`
}

// New builds a document for reports generated at now.
func New(now time.Time, reports []bsp.MapReport) Document {
	return Document{Title: Title, GeneratedAt: now, Maps: reports}
}

// FileName is the output file name for a run started at now.
func FileName(now time.Time, format string) string {
	ext := "txt"
	if format == FormatYAML {
		ext = "yaml"
	}
	return fmt.Sprintf("vertice_output_%s.%s", now.Format("Jan_02-15_04_05"), ext)
}

// Write renders doc in the given format.
func Write(w io.Writer, doc Document, format string) error {
	switch format {
	case FormatText:
		return WriteText(w, doc)
	case FormatYAML:
		return WriteYAML(w, doc)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteYAML encodes doc as YAML.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText writes doc as plain text, one value per line.
func WriteText(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, doc.Title)
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Report generated at: %s\n", doc.GeneratedAt.Format("Monday 02 January 2006 - 15:04:05"))
	for _, m := range doc.Maps {
		fmt.Fprintln(bw)
		for _, line := range Lines(m) {
			fmt.Fprintln(bw, line)
		}
	}
	return bw.Flush()
}

// Lines lays out one map report as lines of text.
func Lines(m bsp.MapReport) []string {
	if m.Empty || m.Extents == nil {
		return []string{m.Label, m.Notice}
	}

	e := m.Extents
	lines := []string{
		m.Label,
		"Map Dimensions:",
		"X Axis:", Float(e.X.Min), Float(e.X.Max),
		"Y Axis:", Float(e.Y.Min), Float(e.Y.Max),
		"Z Axis:", Float(e.Z.Min), Float(e.Z.Max),
		"Spawn Points:",
	}
	for i, s := range m.Spawns {
		c := s.Clearance
		lines = append(lines,
			fmt.Sprintf("Spawn Point %d", i+1),
			"Spawn Position",
			"X Axis", Float(s.Point.X),
			"Y Axis", Float(s.Point.Y),
			"Z Axis", Float(s.Point.Z),
			"Space until void:",
			Float(c.Left), Float(c.Right),
			Float(c.Forward), Float(c.Backward),
			Float(c.Up), Float(c.Down),
			"",
		)
	}
	return lines
}

// Float formats v with the shortest exact digits, always showing a decimal
// point for finite whole numbers ("64.0", "-2.5", "1e+20").
func Float(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if a := math.Abs(v); a != 0 && (a >= 1e16 || a < 1e-4) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
