// Package types defines the domain types, configuration, and standard
// error values for the txlens transaction-graph pipeline: raw parsed rows,
// classification labels, node and edge records, the assembled graph
// snapshot, and the caller-supplied limits that bound parsing and sampling.
package types
