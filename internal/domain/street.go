package domain

import "strings"

// Street is a directory entry used when a user picks an address.
type Street struct {
	ID   int
	Name string
}

// NameEquals compares the street name to the query, case-insensitively.
func (s Street) NameEquals(query string) bool {
	return strings.EqualFold(s.Name, query)
}

// NameContains reports whether the lowercased name contains the lowercased query.
func (s Street) NameContains(query string) bool {
	return strings.Contains(strings.ToLower(s.Name), strings.ToLower(query))
}
