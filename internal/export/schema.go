// Package export materializes assembled graph snapshots for the
// rendering collaborator: a SQLite database for querying and a JSON
// document in the shape the renderer consumes. Exports are artifacts
// produced on demand; the pipeline itself stays stateless.
package export

// Schema DDL for a graph snapshot database. Every export starts from a
// fresh file, so there are no migrations.
const (
	createNodes = `CREATE TABLE nodes (
    tx_id TEXT PRIMARY KEY,
    render_id TEXT NOT NULL,
    classification TEXT NOT NULL,
    feature_sum REAL NOT NULL,
    timestep INTEGER NOT NULL,
    position INTEGER NOT NULL
);`

	createEdges = `CREATE TABLE edges (
    position INTEGER PRIMARY KEY,
    render_id TEXT NOT NULL,
    source_tx_id TEXT NOT NULL,
    target_tx_id TEXT NOT NULL,
    FOREIGN KEY (source_tx_id) REFERENCES nodes(tx_id),
    FOREIGN KEY (target_tx_id) REFERENCES nodes(tx_id)
);`

	createStatistics = `CREATE TABLE statistics (
    snapshot_id TEXT PRIMARY KEY,
    total INTEGER NOT NULL,
    illicit INTEGER NOT NULL,
    licit INTEGER NOT NULL,
    unknown INTEGER NOT NULL,
    edge_count INTEGER NOT NULL
);`
)

// schemaDDL lists the statements executed on a fresh snapshot database.
var schemaDDL = []string{createNodes, createEdges, createStatistics}
