package models

// Friend represents a member of the gaming group
type Friend struct {
	Entity

	// DisplayName is the name shown in attendance lists and stats
	DisplayName string

	// Archived indicates the friend no longer plays; archived friends
	// are excluded from new sessions and from stats unless requested
	Archived bool
}
