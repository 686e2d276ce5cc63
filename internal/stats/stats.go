// Package stats computes aggregate statistics over assembled graphs.
// Both entry points are pure functions over the graph value: no side
// effects, no external state.
package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

// Summarize tallies the classification partitions and edge count of the
// graph. It recounts from the node and edge sequences rather than trusting
// the statistics stored on the graph, so it holds for any well-formed
// value, sampled or full.
func Summarize(g *types.AssembledGraph) types.Statistics {
	s := types.Statistics{Total: len(g.Nodes), EdgeCount: len(g.Edges)}
	for _, n := range g.Nodes {
		switch n.Classification {
		case types.ClassIllicit:
			s.Illicit++
		case types.ClassLicit:
			s.Licit++
		default:
			s.Unknown++
		}
	}
	return s
}

// Extended computes, per classification class, the mean, standard
// deviation, minimum and maximum of the node feature scores, plus the
// node count per timestep. Classes with no nodes are omitted from the
// per-class map.
func Extended(g *types.AssembledGraph) types.ExtendedStatistics {
	sums := map[types.Classification][]float64{}
	perStep := map[int]int{}
	for _, n := range g.Nodes {
		class := n.Classification
		if !class.Valid() {
			class = types.ClassUnknown
		}
		sums[class] = append(sums[class], n.FeatureSum)
		perStep[n.Timestep]++
	}

	perClass := make(map[types.Classification]types.ClassSummary, len(sums))
	for class, xs := range sums {
		summary := types.ClassSummary{
			Count:   len(xs),
			MeanSum: stat.Mean(xs, nil),
			MinSum:  xs[0],
			MaxSum:  xs[0],
		}
		if len(xs) > 1 {
			summary.StdDevSum = stat.StdDev(xs, nil)
		}
		for _, x := range xs[1:] {
			if x < summary.MinSum {
				summary.MinSum = x
			}
			if x > summary.MaxSum {
				summary.MaxSum = x
			}
		}
		perClass[class] = summary
	}

	return types.ExtendedStatistics{
		Statistics: Summarize(g),
		PerClass:   perClass,
		PerStep:    perStep,
	}
}
