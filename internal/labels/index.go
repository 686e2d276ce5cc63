// Package labels builds the classification index from the classes table:
// a transaction-id to classification lookup consumed by graph assembly.
package labels

import (
	"github.com/mesh-intelligence/txlens/internal/schema"
	"github.com/mesh-intelligence/txlens/pkg/types"
)

// BuildIndex resolves the id and label of every class row and folds the
// parseable pairs into a ClassificationIndex. A later row for the same id
// overwrites an earlier one. Rows whose id or label does not resolve, and
// rows whose label is not 1 or 2, are skipped and counted — their ids stay
// absent from the index so the downstream join defaults them to unknown.
// Skipping is never fatal.
func BuildIndex(classRows []types.RawRow) (index types.ClassificationIndex, skipped int) {
	index = make(types.ClassificationIndex, len(classRows))
	for _, row := range classRows {
		_, id, ok := schema.ResolveID(row)
		if !ok {
			skipped++
			continue
		}
		_, raw, ok := schema.ResolveLabel(row)
		if !ok {
			skipped++
			continue
		}
		class, ok := types.ParseClassLabel(raw)
		if !ok {
			skipped++
			continue
		}
		index[id] = class
	}
	return index, skipped
}
