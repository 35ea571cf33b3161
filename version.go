package dfakit

import _ "embed"

// Version is the release version of dfakit.
//
//go:embed VERSION
var Version string
