package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2003dinijay/ChatStack/internal/identityclient"
)

type post struct {
	ID       int64
	AuthorID int64
}

func authorOf(p post) int64 { return p.AuthorID }

func TestMerge_PreservesLengthAndOrder(t *testing.T) {
	posts := []post{{ID: 1, AuthorID: 10}, {ID: 2, AuthorID: 20}, {ID: 3, AuthorID: 10}}
	authors := map[int64]identityclient.UserSummary{
		10: {ID: 10, Username: "alice"},
		20: {ID: 20, Username: "bob"},
	}

	got := Merge(posts, authorOf, authors)

	require.Len(t, got, len(posts))
	for i := range posts {
		assert.Equal(t, posts[i].ID, got[i].Item.ID)
	}
	assert.Equal(t, "alice", got[0].Author.Username)
	assert.Equal(t, "bob", got[1].Author.Username)
	assert.Equal(t, "alice", got[2].Author.Username)
}

func TestMerge_MissingAuthorIsNil(t *testing.T) {
	posts := []post{{ID: 1, AuthorID: 10}, {ID: 2, AuthorID: 99}}
	authors := map[int64]identityclient.UserSummary{10: {ID: 10, Username: "alice"}}

	got := Merge(posts, authorOf, authors)

	require.Len(t, got, 2)
	assert.NotNil(t, got[0].Author)
	assert.Nil(t, got[1].Author)
}

func TestMerge_EmptyMapNeverFails(t *testing.T) {
	posts := []post{{ID: 1, AuthorID: 10}, {ID: 2, AuthorID: 20}}

	got := Merge(posts, authorOf, map[int64]identityclient.UserSummary{})

	require.Len(t, got, 2)
	for _, e := range got {
		assert.Nil(t, e.Author)
	}
}

func TestMerge_EmptyInput(t *testing.T) {
	got := Merge(nil, authorOf, map[int64]identityclient.UserSummary{10: {}})
	assert.Empty(t, got)
}

func TestAuthorIDs(t *testing.T) {
	posts := []post{{AuthorID: 10}, {AuthorID: 20}, {AuthorID: 10}}
	assert.Equal(t, []int64{10, 20, 10}, AuthorIDs(posts, authorOf))
}
