// Package schema reconciles the column-naming conventions of the three
// input tables to canonical fields. Each field has one fixed, ordered
// alias list; resolution takes the first alias present in the row with a
// non-empty value. Resolution is purely name-based and deterministic —
// values are never inspected to guess a column's meaning.
package schema

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

// Alias priority per canonical field. Order matters: the canonical
// dataset name first, generic names next, the positional column last.
// The positional entries reflect the Elliptic layout: headerless feature
// rows carry the id in column 0 and the timestep in column 1, and the
// edgelist orders source before target.
var (
	idAliases       = []string{"txId", "id", "node_id", "tx_id", "txid", "0"}
	labelAliases    = []string{"class", "label", "classification", "category", "1"}
	timestepAliases = []string{"timestep", "time_step", "time step", "ts", "1"}
	sourceAliases   = []string{"txId1", "source", "src", "from", "0"}
	targetAliases   = []string{"txId2", "target", "dst", "to", "1"}
)

// resolve returns the first alias present in the row with a non-empty
// value, together with that value. Presence is checked explicitly so a
// legitimate "0" value is never mistaken for an absent cell; only an
// empty cell counts as missing.
func resolve(row types.RawRow, aliases []string) (column, value string, ok bool) {
	for _, alias := range aliases {
		if v, present := row[alias]; present && v != "" {
			return alias, v, true
		}
	}
	return "", "", false
}

// ResolveID returns the canonical transaction id of a feature or class
// row. ok is false when no id alias matches; the caller skips the row.
func ResolveID(row types.RawRow) (column, value string, ok bool) {
	return resolve(row, idAliases)
}

// ResolveLabel returns the raw classification label cell of a class row.
func ResolveLabel(row types.RawRow) (column, value string, ok bool) {
	return resolve(row, labelAliases)
}

// ResolveTimestep returns the timestep of a feature row as an integer.
// ok is false when no alias matches or the cell does not parse; the
// assembler then applies the default timestep.
func ResolveTimestep(row types.RawRow) (column string, value int, ok bool) {
	col, raw, found := resolve(row, timestepAliases)
	if !found {
		return "", 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return col, 0, false
	}
	return col, n, true
}

// ResolveSource returns the source endpoint of an edge row.
func ResolveSource(row types.RawRow) (column, value string, ok bool) {
	return resolve(row, sourceAliases)
}

// ResolveTarget returns the target endpoint of an edge row.
func ResolveTarget(row types.RawRow) (column, value string, ok bool) {
	return resolve(row, targetAliases)
}
