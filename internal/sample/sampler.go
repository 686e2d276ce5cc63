// Package sample downsamples an assembled graph to a bounded node count
// while preserving approximate class proportions. Sampling is an
// order-preserving prefix take per class partition, never random: given
// identical inputs and parameters, the output node order and composition
// are bit-identical across runs.
package sample

import (
	"math"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

// Params bounds one sampling pass.
type Params struct {
	// TargetMax is the overall node budget. Zero or negative returns the
	// source graph unchanged (as a copy).
	TargetMax int

	// Proportions splits TargetMax across the three classes. Proportions
	// must sum to at most 1.
	Proportions types.Proportions

	// HardCaps are absolute per-class ceilings applied after proportions.
	// Zero means no cap.
	HardCaps types.Caps

	// MaxExaminationRows bounds the partition scan. When positive, the
	// scan stops after examining this many nodes even if some partitions
	// are not yet full; rare classes appearing late in the input can be
	// under-represented. That is a documented performance ceiling, not a
	// defect. Zero scans everything.
	MaxExaminationRows int
}

// FromConfig derives sampling parameters from the pipeline configuration.
func FromConfig(cfg types.Config) Params {
	return Params{
		TargetMax:          cfg.MaxSampleNodes,
		Proportions:        cfg.ClassProportions,
		HardCaps:           cfg.PerClassHardCaps,
		MaxExaminationRows: cfg.MaxExaminationRows,
	}
}

// Sample returns a new graph containing for each class at most
// floor(TargetMax * proportion) nodes, capped by the class hard cap,
// taken as a prefix of the class partition in original node order. The
// partitions are concatenated in the fixed order illicit, licit, unknown.
// Edges are re-filtered against the sampled node set so the result stays
// self-consistent; edges touching a dropped node are removed. The source
// graph is never mutated.
func Sample(g *types.AssembledGraph, p Params) *types.AssembledGraph {
	if p.TargetMax <= 0 {
		return copyGraph(g)
	}

	quotas := map[types.Classification]int{
		types.ClassIllicit: quota(p.TargetMax, p.Proportions.Illicit, p.HardCaps.Illicit),
		types.ClassLicit:   quota(p.TargetMax, p.Proportions.Licit, p.HardCaps.Licit),
		types.ClassUnknown: quota(p.TargetMax, p.Proportions.Unknown, p.HardCaps.Unknown),
	}

	parts := map[types.Classification][]types.NodeRecord{}
	filled := 0
	for _, q := range quotas {
		if q == 0 {
			filled++
		}
	}
	for scanned, n := range g.Nodes {
		if p.MaxExaminationRows > 0 && scanned >= p.MaxExaminationRows {
			break
		}
		class := n.Classification
		if !class.Valid() {
			class = types.ClassUnknown
		}
		if len(parts[class]) < quotas[class] {
			parts[class] = append(parts[class], n)
			if len(parts[class]) == quotas[class] {
				filled++
				if filled == len(quotas) {
					break
				}
			}
		}
	}

	nodes := make([]types.NodeRecord, 0, len(parts[types.ClassIllicit])+len(parts[types.ClassLicit])+len(parts[types.ClassUnknown]))
	nodes = append(nodes, parts[types.ClassIllicit]...)
	nodes = append(nodes, parts[types.ClassLicit]...)
	nodes = append(nodes, parts[types.ClassUnknown]...)

	present := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		present[n.ID] = struct{}{}
	}

	edges := make([]types.EdgeRecord, 0, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := present[e.Source]; !ok {
			continue
		}
		if _, ok := present[e.Target]; !ok {
			continue
		}
		edges = append(edges, e)
	}

	return &types.AssembledGraph{
		SnapshotID: g.SnapshotID,
		Nodes:      nodes,
		Edges:      edges,
		Statistics: types.Statistics{
			Total:     len(nodes),
			Illicit:   len(parts[types.ClassIllicit]),
			Licit:     len(parts[types.ClassLicit]),
			Unknown:   len(parts[types.ClassUnknown]),
			EdgeCount: len(edges),
		},
	}
}

// quota is floor(target * proportion), bounded by the hard cap when set.
func quota(target int, proportion float64, hardCap int) int {
	q := int(math.Floor(float64(target) * proportion))
	if hardCap > 0 && q > hardCap {
		q = hardCap
	}
	if q < 0 {
		q = 0
	}
	return q
}

// copyGraph returns an independent copy of g.
func copyGraph(g *types.AssembledGraph) *types.AssembledGraph {
	out := &types.AssembledGraph{
		SnapshotID: g.SnapshotID,
		Nodes:      make([]types.NodeRecord, len(g.Nodes)),
		Edges:      make([]types.EdgeRecord, len(g.Edges)),
		Statistics: g.Statistics,
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}
