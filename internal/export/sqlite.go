package export

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

// WriteSQLite writes the graph to a fresh SQLite database at path. An
// existing file is removed first; the snapshot is written in a single
// transaction so a failed export never leaves a partial database behind.
func WriteSQLite(g *types.AssembledGraph, path string) error {
	// Fresh file per snapshot.
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening snapshot database: %w", err)
	}
	defer db.Close()

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := insertGraph(tx, g); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

func insertGraph(tx *sql.Tx, g *types.AssembledGraph) error {
	insertNode, err := tx.Prepare(
		`INSERT INTO nodes (tx_id, render_id, classification, feature_sum, timestep, position)
         VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing node insert: %w", err)
	}
	defer insertNode.Close()

	for i, n := range g.Nodes {
		if _, err := insertNode.Exec(n.ID, n.RenderID(), string(n.Classification), n.FeatureSum, n.Timestep, i); err != nil {
			return fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
	}

	insertEdge, err := tx.Prepare(
		`INSERT INTO edges (position, render_id, source_tx_id, target_tx_id)
         VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing edge insert: %w", err)
	}
	defer insertEdge.Close()

	for i, e := range g.Edges {
		if _, err := insertEdge.Exec(i, types.EdgeRenderID(i), e.Source, e.Target); err != nil {
			return fmt.Errorf("inserting edge %d: %w", i, err)
		}
	}

	s := g.Statistics
	if _, err := tx.Exec(
		`INSERT INTO statistics (snapshot_id, total, illicit, licit, unknown, edge_count)
         VALUES (?, ?, ?, ?, ?, ?)`,
		g.SnapshotID, s.Total, s.Illicit, s.Licit, s.Unknown, s.EdgeCount); err != nil {
		return fmt.Errorf("inserting statistics: %w", err)
	}
	return nil
}
