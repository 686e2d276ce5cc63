package types

// FeatureRecord is one accepted feature row after schema reconciliation.
// ID is unique within the table; on duplicate ids the last row wins.
type FeatureRecord struct {
	ID         string  // Canonical transaction id.
	Timestep   int     // Resolved timestep; defaults to 1 when absent.
	FeatureSum float64 // Sum of all numeric non-id, non-timestep columns.
	Raw        RawRow  // Source row, kept through the assembly pass.
}

// NodeRecord is a graph node: a feature record joined with its
// classification. Every NodeRecord id is unique within an assembled graph.
type NodeRecord struct {
	ID             string         `json:"id"`
	Classification Classification `json:"classification"`
	FeatureSum     float64        `json:"feature_sum"`
	Timestep       int            `json:"timestep"`
}

// RenderID returns the stable identifier handed to rendering
// collaborators, of the form "tx_<id>".
func (n NodeRecord) RenderID() string {
	return "tx_" + n.ID
}

// EdgeRecord is a directed edge between two nodes of the same assembled
// graph. Both endpoints are guaranteed to exist as node ids; edges that
// would dangle are pruned during assembly. Self-loops and duplicate edges
// are permitted and preserved in input order.
type EdgeRecord struct {
	Source string `json:"source"`
	Target string `json:"target"`
}
