package types

// RawRow is one parsed row of a delimited-text table, keyed by the column
// names derived from the header (or by positional names "0", "1", ... for
// headerless tables). A key that is absent means the column did not appear
// in the row; presence with an empty string means the cell was empty.
// RawRows are transient: feature rows retain theirs until assembly
// completes, after which only the derived record fields survive.
type RawRow map[string]string
