package sql

import (
	"strings"
)

type Identifier int

const MaxIdentifier = 128

var (
	lastIdentifier Identifier
	identifiers    = map[string]Identifier{}
	names          = map[Identifier]string{}
)

// ID interns s case-insensitively and returns its identifier.
func ID(s string) Identifier {
	return QuotedID(strings.ToLower(s))
}

// QuotedID interns s exactly as given.
func QuotedID(s string) Identifier {
	if len(s) > MaxIdentifier {
		s = s[:MaxIdentifier]
	}

	if id, found := identifiers[s]; found {
		return id
	}
	lastIdentifier += 1
	identifiers[s] = lastIdentifier
	names[lastIdentifier] = s
	return lastIdentifier
}

func (id Identifier) String() string {
	return names[id]
}
