// Package data holds the agenda snapshot compiled into the binaries for
// offline use.
package data

import _ "embed"

// Agenda is the bundled feed document in the modern envelope shape.
//
//go:embed agenda.json
var Agenda []byte
