// Package assemble turns reconciled feature rows, the classification
// index, and edge rows into one immutable assembled graph. Assembly is a
// single synchronous pass: node construction, edge candidate collection,
// dangling-edge pruning, and statistics tallying. Row-level anomalies are
// skipped and counted, never fatal; only empty input collections fail.
package assemble

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/txlens/internal/schema"
	"github.com/mesh-intelligence/txlens/pkg/types"
)

// defaultTimestep is applied when a feature row carries no resolvable
// timestep column.
const defaultTimestep = 1

// maxLoggedAnomalies caps the number of individually logged skipped rows
// per category; totals are always logged in the completion event.
const maxLoggedAnomalies = 8

// Assembler builds graphs. It holds no state between Assemble calls; the
// logger is the only field and zap.NewNop is used when none is given.
type Assembler struct {
	logger *zap.Logger
}

// New returns an Assembler logging row anomalies to the given logger.
// A nil logger disables logging.
func New(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{logger: logger}
}

// Assemble joins feature rows with the classification index into node
// records, converts edge rows into edge records, prunes edges whose
// endpoints are not both present, and tallies statistics. The returned
// graph is an independent value: assembly keeps no reference to it, and
// calling Assemble twice on the same inputs yields structurally identical
// graphs.
//
// On duplicate feature ids the last row wins: the node keeps the position
// of its first occurrence and the values of its last. Assembly fails only
// when one of the three inputs is empty, with an error naming the table.
func (a *Assembler) Assemble(features []types.RawRow, index types.ClassificationIndex, edges []types.RawRow) (*types.AssembledGraph, error) {
	if len(features) == 0 {
		return nil, types.EmptyDataset(types.TableFeatures)
	}
	if len(index) == 0 {
		return nil, types.EmptyDataset(types.TableClasses)
	}
	if len(edges) == 0 {
		return nil, types.EmptyDataset(types.TableEdges)
	}

	nodes, nodeAt, skippedFeatures := a.buildNodes(features, index)

	candidates, skippedEdges := a.buildEdgeCandidates(edges)

	kept := make([]types.EdgeRecord, 0, len(candidates))
	for _, e := range candidates {
		if _, ok := nodeAt[e.Source]; !ok {
			continue
		}
		if _, ok := nodeAt[e.Target]; !ok {
			continue
		}
		kept = append(kept, e)
	}
	pruned := len(candidates) - len(kept)

	stats := types.Statistics{Total: len(nodes), EdgeCount: len(kept)}
	for _, n := range nodes {
		switch n.Classification {
		case types.ClassIllicit:
			stats.Illicit++
		case types.ClassLicit:
			stats.Licit++
		default:
			stats.Unknown++
		}
	}

	a.logger.Info("graph assembled",
		zap.Int("nodes", stats.Total),
		zap.Int("edges", stats.EdgeCount),
		zap.Int("skipped_feature_rows", skippedFeatures),
		zap.Int("skipped_edge_rows", skippedEdges),
		zap.Int("pruned_edges", pruned),
	)

	return &types.AssembledGraph{
		Nodes:      nodes,
		Edges:      kept,
		Statistics: stats,
	}, nil
}

// buildNodes converts feature rows into node records, joining each id
// against the classification index with unknown as the join default.
func (a *Assembler) buildNodes(features []types.RawRow, index types.ClassificationIndex) ([]types.NodeRecord, map[string]int, int) {
	nodes := make([]types.NodeRecord, 0, len(features))
	nodeAt := make(map[string]int, len(features))
	skipped := 0

	for _, row := range features {
		idCol, id, ok := schema.ResolveID(row)
		if !ok {
			skipped++
			if skipped <= maxLoggedAnomalies {
				a.logger.Warn("feature row without resolvable id skipped")
			}
			continue
		}

		tsCol, timestep, ok := schema.ResolveTimestep(row)
		if !ok {
			timestep = defaultTimestep
		}

		class, present := index[id]
		if !present {
			class = types.ClassUnknown
		}

		node := types.NodeRecord{
			ID:             id,
			Classification: class,
			FeatureSum:     featureSum(row, idCol, tsCol),
			Timestep:       timestep,
		}

		if at, exists := nodeAt[id]; exists {
			// Last write wins; position of the first occurrence is kept.
			nodes[at] = node
			continue
		}
		nodeAt[id] = len(nodes)
		nodes = append(nodes, node)
	}

	return nodes, nodeAt, skipped
}

// buildEdgeCandidates resolves edge endpoints, preserving input order.
// Rows with an unresolvable endpoint are skipped.
func (a *Assembler) buildEdgeCandidates(edges []types.RawRow) ([]types.EdgeRecord, int) {
	candidates := make([]types.EdgeRecord, 0, len(edges))
	skipped := 0
	for _, row := range edges {
		_, source, ok := schema.ResolveSource(row)
		if !ok {
			skipped++
			if skipped <= maxLoggedAnomalies {
				a.logger.Warn("edge row without resolvable source skipped")
			}
			continue
		}
		_, target, ok := schema.ResolveTarget(row)
		if !ok {
			skipped++
			if skipped <= maxLoggedAnomalies {
				a.logger.Warn("edge row without resolvable target skipped")
			}
			continue
		}
		candidates = append(candidates, types.EdgeRecord{Source: source, Target: target})
	}
	return candidates, skipped
}

// featureSum adds every numeric-parseable cell of the row except the id
// and timestep columns. Non-numeric cells contribute zero. Columns are
// visited in sorted order so the floating-point sum is identical across
// runs regardless of map iteration order.
func featureSum(row types.RawRow, idCol, tsCol string) float64 {
	cols := make([]string, 0, len(row))
	for col := range row {
		if col == idCol || (tsCol != "" && col == tsCol) {
			continue
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sum := 0.0
	for _, col := range cols {
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64); err == nil {
			sum += v
		}
	}
	return sum
}
