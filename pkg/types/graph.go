package types

import "strconv"

// Statistics holds the aggregate counts of one assembled or sampled graph.
// Invariant: Illicit + Licit + Unknown == Total == len(Nodes).
type Statistics struct {
	Total     int `json:"total"`
	Illicit   int `json:"illicit"`
	Licit     int `json:"licit"`
	Unknown   int `json:"unknown"`
	EdgeCount int `json:"edge_count"`
}

// AssembledGraph is the immutable result of one assembly pass: ordered
// nodes, ordered edges whose endpoints all exist in Nodes, and the
// statistics tallied during assembly. A graph is created once per load,
// replaced wholesale on reload, and never mutated in place; sampling
// produces a new graph rather than modifying the source.
type AssembledGraph struct {
	SnapshotID string       `json:"snapshot_id"`
	Nodes      []NodeRecord `json:"nodes"`
	Edges      []EdgeRecord `json:"edges"`
	Statistics Statistics   `json:"statistics"`
}

// EdgeRenderID returns the stable identifier for the edge at position i,
// of the form "edge_<index>".
func EdgeRenderID(i int) string {
	return "edge_" + strconv.Itoa(i)
}

// ClassSummary holds per-class feature-score moments for one
// classification partition.
type ClassSummary struct {
	Count     int     `json:"count"`
	MeanSum   float64 `json:"mean_sum"`
	StdDevSum float64 `json:"stddev_sum"`
	MinSum    float64 `json:"min_sum"`
	MaxSum    float64 `json:"max_sum"`
}

// ExtendedStatistics augments Statistics with per-class feature-score
// moments and the node count per timestep.
type ExtendedStatistics struct {
	Statistics Statistics                      `json:"statistics"`
	PerClass   map[Classification]ClassSummary `json:"per_class"`
	PerStep    map[int]int                     `json:"per_step"`
}
