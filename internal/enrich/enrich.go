// Package enrich joins locally-owned domain records with identity data
// resolved at read time. Author fields are never persisted alongside domain
// records; they are a projection of the authority's current state, so
// identity edits are visible immediately without migrating consumer data.
package enrich

import "github.com/2003dinijay/ChatStack/internal/identityclient"

// Entity is an ordered domain record plus its resolved author. Author is nil
// when the identity could not be resolved; absence is expected, not an error.
type Entity[T any] struct {
	Item   T
	Author *identityclient.UserSummary
}

// Merge joins items with the id→summary map, preserving input length and
// order. It never fails: a missing mapping yields a nil Author.
func Merge[T any](items []T, authorID func(T) int64, authors map[int64]identityclient.UserSummary) []Entity[T] {
	out := make([]Entity[T], len(items))
	for i, item := range items {
		out[i] = Entity[T]{Item: item}
		if u, ok := authors[authorID(item)]; ok {
			out[i].Author = &u
		}
	}
	return out
}

// AuthorIDs extracts the author id of every item, in input order, without
// deduplication. Deduplication belongs to the identity client.
func AuthorIDs[T any](items []T, authorID func(T) int64) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = authorID(item)
	}
	return ids
}
