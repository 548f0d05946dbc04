package bsp

// NoSpawnPointsNotice is carried by reports of maps without deathmatch spawns.
const NoSpawnPointsNotice = "No spawn points found in map. Skipped."

// SpawnClearance pairs a spawn point with its clearance.
type SpawnClearance struct {
	Point     SpawnPoint `yaml:"point"`
	Clearance Clearance  `yaml:"clearance"`
}

// MapReport is the measured result for one map. Empty reports have no
// extents and no spawns, only Notice.
type MapReport struct {
	Label   string           `yaml:"label"`
	Empty   bool             `yaml:"empty"`
	Notice  string           `yaml:"notice,omitempty"`
	Extents *Extents         `yaml:"extents,omitempty"`
	Spawns  []SpawnClearance `yaml:"spawns,omitempty"`
}

// BuildReport measures points and assembles the report for label. It does no
// I/O and keeps no state between calls.
func BuildReport(label string, points []SpawnPoint) MapReport {
	if len(points) == 0 {
		return MapReport{Label: label, Empty: true, Notice: NoSpawnPointsNotice}
	}

	extents, err := ComputeExtents(points)
	if err != nil {
		// Unreachable with a non-empty slice
		panic(err)
	}

	spawns := make([]SpawnClearance, len(points))
	for i, p := range points {
		spawns[i] = SpawnClearance{Point: p, Clearance: ComputeClearance(p, extents)}
	}
	return MapReport{Label: label, Extents: &extents, Spawns: spawns}
}
