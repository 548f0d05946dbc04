package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stuarthighley/bsp"
)

var when = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func sampleReports() []bsp.MapReport {
	return []bsp.MapReport{
		bsp.BuildReport("Map 1 - dm.bsp", []bsp.SpawnPoint{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 5, Z: 2.5}}),
		bsp.BuildReport("Map 2 - ctf.bsp", nil),
	}
}

func TestLines(t *testing.T) {
	lines := Lines(sampleReports()[0])
	want := []string{
		"Map 1 - dm.bsp",
		"Map Dimensions:",
		"X Axis:", "0.0", "10.0",
		"Y Axis:", "0.0", "5.0",
		"Z Axis:", "0.0", "2.5",
		"Spawn Points:",
		"Spawn Point 1", "Spawn Position",
		"X Axis", "0.0", "Y Axis", "0.0", "Z Axis", "0.0",
		"Space until void:", "0.0", "10.0", "5.0", "0.0", "2.5", "0.0",
		"",
		"Spawn Point 2", "Spawn Position",
		"X Axis", "10.0", "Y Axis", "5.0", "Z Axis", "2.5",
		"Space until void:", "10.0", "0.0", "0.0", "5.0", "0.0", "2.5",
		"",
	}
	assert.Equal(t, want, lines)
}

func TestLinesEmpty(t *testing.T) {
	assert.Equal(t, []string{"Map 2 - ctf.bsp", bsp.NoSpawnPointsNotice}, Lines(sampleReports()[1]))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New(when, sampleReports()), FormatText))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, Title+"\n\nReport generated at: Tuesday 05 March 2024 - 14:07:09\n"))
	assert.Contains(t, out, "Map 1 - dm.bsp\nMap Dimensions:\n")
	assert.Contains(t, out, "Map 2 - ctf.bsp\n"+bsp.NoSpawnPointsNotice+"\n")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New(when, sampleReports()), FormatYAML))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, Title, doc.Title)
	assert.True(t, when.Equal(doc.GeneratedAt))
	require.Len(t, doc.Maps, 2)
	assert.Equal(t, sampleReports()[0], doc.Maps[0])
	assert.True(t, doc.Maps[1].Empty)
	assert.Nil(t, doc.Maps[1].Extents)
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, New(when, nil), "pdf"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "vertice_output_Mar_05-14_07_09.txt", FileName(when, FormatText))
	assert.Equal(t, "vertice_output_Mar_05-14_07_09.yaml", FileName(when, FormatYAML))
}

func TestFloat(t *testing.T) {
	for v, want := range map[float64]string{
		0:     "0.0",
		64:    "64.0",
		-2.5:  "-2.5",
		1.25:  "1.25",
		1e20:  "1e+20",
		-1e20: "-1e+20",
	} {
		assert.Equal(t, want, Float(v), "%v", v)
	}
	assert.Equal(t, "nan", Float(math.NaN()))
	assert.Equal(t, "inf", Float(math.Inf(1)))
	assert.Equal(t, "-inf", Float(math.Inf(-1)))
}
