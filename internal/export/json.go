package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

// Document is the JSON shape handed to the rendering collaborator: flat
// node and edge lists carrying stable render ids, plus the statistics
// summary. Edge source and target reference node render ids.
type Document struct {
	SnapshotID string           `json:"snapshot_id"`
	Nodes      []DocumentNode   `json:"nodes"`
	Edges      []DocumentEdge   `json:"edges"`
	Statistics types.Statistics `json:"statistics"`
}

// DocumentNode is one rendered node element.
type DocumentNode struct {
	ID             string               `json:"id"` // "tx_<TransactionId>"
	TxID           string               `json:"tx_id"`
	Classification types.Classification `json:"classification"`
	FeatureSum     float64              `json:"feature_sum"`
	Timestep       int                  `json:"timestep"`
}

// DocumentEdge is one rendered edge element.
type DocumentEdge struct {
	ID     string `json:"id"` // "edge_<index>"
	Source string `json:"source"`
	Target string `json:"target"`
}

// BuildDocument converts a graph into its render document.
func BuildDocument(g *types.AssembledGraph) Document {
	doc := Document{
		SnapshotID: g.SnapshotID,
		Nodes:      make([]DocumentNode, len(g.Nodes)),
		Edges:      make([]DocumentEdge, len(g.Edges)),
		Statistics: g.Statistics,
	}
	for i, n := range g.Nodes {
		doc.Nodes[i] = DocumentNode{
			ID:             n.RenderID(),
			TxID:           n.ID,
			Classification: n.Classification,
			FeatureSum:     n.FeatureSum,
			Timestep:       n.Timestep,
		}
	}
	for i, e := range g.Edges {
		doc.Edges[i] = DocumentEdge{
			ID:     types.EdgeRenderID(i),
			Source: "tx_" + e.Source,
			Target: "tx_" + e.Target,
		}
	}
	return doc
}

// WriteJSON writes the render document to path atomically: the document
// is marshalled to a temp file in the target directory, synced, then
// renamed over the destination.
func WriteJSON(g *types.AssembledGraph, path string) error {
	data, err := json.MarshalIndent(BuildDocument(g), "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling graph document: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".graph-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
