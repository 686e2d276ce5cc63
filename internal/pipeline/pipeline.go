// Package pipeline orchestrates one load: the three input tables are
// parsed concurrently, then reconciliation, label joining, assembly, and
// optional sampling run as a single synchronous pass. The pipeline is
// value-passing and stateless — a Loader holds configuration and a
// logger, never data. A failed load returns an error and no graph; two
// loads never share mutable state, so a caller that wants single-flight
// behavior only has to serialize its own calls.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/txlens/internal/assemble"
	"github.com/mesh-intelligence/txlens/internal/labels"
	"github.com/mesh-intelligence/txlens/internal/sample"
	"github.com/mesh-intelligence/txlens/internal/tabular"
	"github.com/mesh-intelligence/txlens/pkg/types"
)

// Inputs are the three delimited-text streams of one load.
type Inputs struct {
	Features io.Reader
	Classes  io.Reader
	Edges    io.Reader
}

// Loader runs loads under a fixed configuration.
type Loader struct {
	cfg    types.Config
	logger *zap.Logger
}

// NewLoader validates the configuration and returns a Loader. A nil
// logger disables logging.
func NewLoader(cfg types.Config, logger *zap.Logger) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cfg: cfg, logger: logger}, nil
}

// Load parses the three tables concurrently, builds the classification
// index, and assembles the graph. Parsing is the only concurrent stage
// and the only suspension point; ctx cancellation applies there. Each
// returned graph carries a fresh snapshot id.
func (l *Loader) Load(ctx context.Context, in Inputs) (*types.AssembledGraph, error) {
	opts := tabular.DefaultOptions()
	opts.MaxInputSizeBytes = l.cfg.MaxInputSizeBytes

	var features, classes, edges *tabular.Result

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		features, err = l.parseTable(egCtx, types.TableFeatures, in.Features, opts)
		return err
	})
	eg.Go(func() error {
		var err error
		classes, err = l.parseTable(egCtx, types.TableClasses, in.Classes, opts)
		return err
	})
	eg.Go(func() error {
		var err error
		edges, err = l.parseTable(egCtx, types.TableEdges, in.Edges, opts)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// A caller may still cancel between parse completion and assembly.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, table := range []struct {
		name string
		res  *tabular.Result
	}{
		{types.TableFeatures, features},
		{types.TableClasses, classes},
		{types.TableEdges, edges},
	} {
		if len(table.res.Rows) == 0 {
			return nil, types.EmptyDataset(table.name)
		}
	}

	index, skippedLabels := labels.BuildIndex(classes.Rows)
	if skippedLabels > 0 {
		l.logger.Info("class rows left out of index",
			zap.Int("skipped", skippedLabels),
			zap.Int("indexed", len(index)),
		)
	}

	graph, err := assemble.New(l.logger).Assemble(features.Rows, index, edges.Rows)
	if err != nil {
		return nil, err
	}
	graph.SnapshotID = uuid.Must(uuid.NewV7()).String()

	l.logger.Info("load complete",
		zap.String("snapshot_id", graph.SnapshotID),
		zap.Int("nodes", graph.Statistics.Total),
		zap.Int("edges", graph.Statistics.EdgeCount),
	)
	return graph, nil
}

// Sample downsamples a loaded graph per the loader configuration. The
// result is a new graph; the source is untouched.
func (l *Loader) Sample(g *types.AssembledGraph) *types.AssembledGraph {
	return sample.Sample(g, sample.FromConfig(l.cfg))
}

// parseTable parses one table, wrapping any failure with the table name
// and logging row-level warnings as a capped count.
func (l *Loader) parseTable(ctx context.Context, name string, r io.Reader, opts tabular.Options) (*tabular.Result, error) {
	if r == nil {
		return nil, fmt.Errorf("parse %s: missing input stream: %w", name, types.ErrParse)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := tabular.Parse(r, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(res.Warnings) > 0 {
		l.logger.Warn("malformed rows skipped",
			zap.String("table", name),
			zap.Int("count", len(res.Warnings)),
			zap.Int("first_line", res.Warnings[0].Line),
		)
	}
	return res, nil
}
