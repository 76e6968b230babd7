// Package types defines the Pantry and Table interfaces, entity types,
// and standard errors for the pantry storage system.
package types
