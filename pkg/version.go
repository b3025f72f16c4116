// Package gnmatch matches scientific names against a taxonomic backbone,
// scoring every candidate by name, authorship, rank and classification.
package gnmatch

var (
	// Version of gnmatch, set during the build.
	Version = "v0.1.0"

	// Build timestamp, set during the build.
	Build = "n/a"
)
