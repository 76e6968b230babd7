// Package pantry holds module-level metadata.
package pantry

// Version is the current pantry release.
const Version = "0.1.0"
