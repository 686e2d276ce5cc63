package export

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

func testGraph() *types.AssembledGraph {
	return &types.AssembledGraph{
		SnapshotID: "0198c5f2-0000-7000-8000-000000000001",
		Nodes: []types.NodeRecord{
			{ID: "A", Classification: types.ClassIllicit, FeatureSum: 1.5, Timestep: 1},
			{ID: "B", Classification: types.ClassLicit, FeatureSum: 2.5, Timestep: 2},
			{ID: "C", Classification: types.ClassUnknown, FeatureSum: 0, Timestep: 2},
		},
		Edges: []types.EdgeRecord{
			{Source: "A", Target: "B"},
			{Source: "B", Target: "C"},
		},
		Statistics: types.Statistics{Total: 3, Illicit: 1, Licit: 1, Unknown: 1, EdgeCount: 2},
	}
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(testGraph())

	if doc.Nodes[0].ID != "tx_A" || doc.Nodes[0].TxID != "A" {
		t.Fatalf("unexpected node ids %+v", doc.Nodes[0])
	}
	if doc.Edges[0].ID != "edge_0" || doc.Edges[1].ID != "edge_1" {
		t.Fatalf("unexpected edge ids %+v", doc.Edges)
	}
	if doc.Edges[0].Source != "tx_A" || doc.Edges[0].Target != "tx_B" {
		t.Fatalf("edge endpoints must use render ids: %+v", doc.Edges[0])
	}
	if doc.Statistics.Total != 3 {
		t.Fatalf("statistics not carried: %+v", doc.Statistics)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteJSON(testGraph(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 3 || len(doc.Edges) != 2 {
		t.Fatalf("round trip lost elements: %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}
	if doc.SnapshotID != testGraph().SnapshotID {
		t.Fatalf("snapshot id = %q", doc.SnapshotID)
	}
	if doc.Nodes[1].Classification != types.ClassLicit {
		t.Fatalf("classification = %q", doc.Nodes[1].Classification)
	}
}

func TestWriteSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.db")
	g := testGraph()
	if err := WriteSQLite(g, path); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var nodes, edges int
	if err := db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&nodes); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM edges").Scan(&edges); err != nil {
		t.Fatal(err)
	}
	if nodes != 3 || edges != 2 {
		t.Fatalf("snapshot has %d nodes, %d edges", nodes, edges)
	}

	var renderID, class string
	err = db.QueryRow("SELECT render_id, classification FROM nodes WHERE tx_id = ?", "A").Scan(&renderID, &class)
	if err != nil {
		t.Fatal(err)
	}
	if renderID != "tx_A" || class != "illicit" {
		t.Fatalf("node A stored as (%q, %q)", renderID, class)
	}

	var total, edgeCount int
	err = db.QueryRow("SELECT total, edge_count FROM statistics WHERE snapshot_id = ?", g.SnapshotID).Scan(&total, &edgeCount)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || edgeCount != 2 {
		t.Fatalf("statistics row (%d, %d)", total, edgeCount)
	}
}

func TestWriteSQLiteReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.db")
	if err := WriteSQLite(testGraph(), path); err != nil {
		t.Fatal(err)
	}

	smaller := &types.AssembledGraph{
		SnapshotID: "0198c5f2-0000-7000-8000-000000000002",
		Nodes:      []types.NodeRecord{{ID: "X", Classification: types.ClassUnknown, Timestep: 1}},
		Edges:      []types.EdgeRecord{{Source: "X", Target: "X"}},
		Statistics: types.Statistics{Total: 1, Unknown: 1, EdgeCount: 1},
	}
	if err := WriteSQLite(smaller, path); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var nodes int
	if err := db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&nodes); err != nil {
		t.Fatal(err)
	}
	if nodes != 1 {
		t.Fatalf("expected fresh snapshot with 1 node, got %d", nodes)
	}
}
