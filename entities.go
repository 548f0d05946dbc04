package bsp

import (
	"strconv"
	"strings"
)

// DeathmatchClassName is the entity class whose origins are collected.
const DeathmatchClassName = "info_player_deathmatch"

const deathmatchMarker = `"classname" "` + DeathmatchClassName + `"`

// SpawnPoint is the origin of one deathmatch spawn entity.
type SpawnPoint struct {
	X, Y, Z float64
}

// ParseEntities decodes an entity lump and returns its deathmatch spawn points.
func ParseEntities(data []byte, dec Decoding) []SpawnPoint {
	return ParseSpawnPoints(DecodeText(data, dec))
}

// ParseSpawnPoints extracts deathmatch spawn origins from entity text, in the
// order they appear. Records are found by splitting on '}' rather than by
// matching braces, so a '}' inside a value splits its record. Records with a
// missing or malformed origin are skipped.
func ParseSpawnPoints(text string) []SpawnPoint {
	points := make([]SpawnPoint, 0)
	for i, entity := range strings.Split(text, "}") {
		if !strings.Contains(entity, deathmatchMarker) {
			continue
		}
		for _, line := range strings.Split(entity, "\n") {
			if !strings.Contains(line, `"origin"`) {
				continue
			}
			// Only the first origin line of a record counts
			p, ok := parseOrigin(line)
			if ok {
				points = append(points, p)
			} else {
				logger.Debug("skipping malformed origin", "entity", i, "line", strings.TrimSpace(line))
			}
			break
		}
	}
	return points
}

// parseOrigin reads `"origin" "x y z"`. The value is the fourth '"'-separated
// field and must hold exactly three single-space-separated numbers.
func parseOrigin(line string) (SpawnPoint, bool) {
	fields := strings.Split(line, `"`)
	if len(fields) < 4 {
		return SpawnPoint{}, false
	}
	coords := strings.Split(fields[3], " ")
	if len(coords) != 3 {
		return SpawnPoint{}, false
	}
	var xyz [3]float64
	for i, c := range coords {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return SpawnPoint{}, false
		}
		xyz[i] = v
	}
	return SpawnPoint{X: xyz[0], Y: xyz[1], Z: xyz[2]}, true
}
