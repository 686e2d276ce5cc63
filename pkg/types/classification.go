package types

import (
	"strconv"
	"strings"
)

// Classification is the compliance label attached to a transaction node.
type Classification string

// The three recognized classification values. Rendering collaborators
// receive these exact strings.
const (
	ClassIllicit Classification = "illicit"
	ClassLicit   Classification = "licit"
	ClassUnknown Classification = "unknown"
)

// validClassifications is the set of recognized classification values.
var validClassifications = map[Classification]bool{
	ClassIllicit: true,
	ClassLicit:   true,
	ClassUnknown: true,
}

// Valid reports whether c is one of the three recognized values.
func (c Classification) Valid() bool {
	return validClassifications[c]
}

// ParseClassLabel converts a raw label cell into a Classification.
// The value is coerced to an integer: 1 means illicit, 2 means licit.
// Any other integer, or a value that does not parse as an integer
// (including the dataset's literal "unknown"), yields ok == false; the
// caller leaves the transaction out of the index so the downstream join
// defaults it to ClassUnknown.
func ParseClassLabel(raw string) (Classification, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	switch n {
	case 1:
		return ClassIllicit, true
	case 2:
		return ClassLicit, true
	default:
		return "", false
	}
}

// ClassificationIndex maps a transaction id to its parsed classification.
// Ids absent from the index are treated as ClassUnknown when joined; that
// is a default, not a missing-data error.
type ClassificationIndex map[string]Classification
