// Package model defines the core data structures passed between the
// tunefetch pipeline stages.
//
// # Search Query
//
// SearchQuery is the free-text input for one pipeline run:
//
//	q := model.NewSearchQuery("Imagine", "John Lennon", "", "")
//	fmt.Println(q.Album) // "Unknown Album"
//	fmt.Println(q.Genre) // "Unknown Genre"
//
// # Candidates
//
// ImageCandidate and VideoCandidate are the options presented to a human
// before a choice is made. Their order is the order the sources returned.
//
// # Artifacts
//
// AudioArtifact describes a finished MP3 on disk; TagRecord is the metadata
// written into it exactly once after acquisition succeeds.
//
// # File Naming
//
// Output names are derived from the query and sanitized:
//
//	q.AudioFileName(false) // "Imagine - John Lennon.mp3"
//	q.CoverFileName(false) // "Imagine_John Lennon.jpg"
package model
