//go:build !release

package parser

// checkMarkers enables the marker stack assertions.
const checkMarkers = true
