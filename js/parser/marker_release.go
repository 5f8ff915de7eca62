//go:build release

package parser

const checkMarkers = false
