package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavorites_Add_PrependsNewestFirst(t *testing.T) {
	fav := &Favorites{ID: "user-1", OwnerID: "user-1"}

	assert.Equal(t, FavoriteAdded, fav.Add(BookSnapshot{ID: "dune", Title: "Dune"}))
	assert.Equal(t, FavoriteAdded, fav.Add(BookSnapshot{ID: "it", Title: "It"}))

	assert.Equal(t, "it", fav.Books[0].ID)
	assert.Equal(t, "dune", fav.Books[1].ID)
}

func TestFavorites_Add_RejectsDuplicates(t *testing.T) {
	fav := &Favorites{ID: "user-1", OwnerID: "user-1"}
	fav.Add(BookSnapshot{ID: "dune", Title: "Dune"})

	result := fav.Add(BookSnapshot{ID: "dune", Title: "Dune"})

	assert.Equal(t, FavoriteAlreadyPresent, result)
	assert.Len(t, fav.Books, 1)
}

func TestFavorites_Add_EnforcesLimit(t *testing.T) {
	fav := &Favorites{ID: "user-1", OwnerID: "user-1"}
	for i := 0; i < MaxFavorites; i++ {
		result := fav.Add(BookSnapshot{ID: fmt.Sprintf("book-%d", i)})
		assert.Equal(t, FavoriteAdded, result)
	}

	// The 16th distinct add is rejected and must not mutate the list.
	result := fav.Add(BookSnapshot{ID: "one-too-many"})

	assert.Equal(t, FavoriteLimitReached, result)
	assert.Len(t, fav.Books, MaxFavorites)
	assert.False(t, fav.Contains("one-too-many"))
}

func TestFavorites_Remove_Works(t *testing.T) {
	fav := &Favorites{ID: "user-1", OwnerID: "user-1"}
	fav.Add(BookSnapshot{ID: "dune"})
	fav.Add(BookSnapshot{ID: "it"})

	assert.True(t, fav.Remove("dune"))
	assert.False(t, fav.Remove("dune"))
	assert.Len(t, fav.Books, 1)
}

func TestFavorites_Clear_EmptiesList(t *testing.T) {
	fav := &Favorites{ID: "user-1", OwnerID: "user-1"}
	fav.Add(BookSnapshot{ID: "dune"})
	fav.Add(BookSnapshot{ID: "it"})

	fav.Clear()

	assert.Empty(t, fav.Books)
}

func TestFavorites_RemovedSlotCanBeRefilled(t *testing.T) {
	fav := &Favorites{ID: "user-1", OwnerID: "user-1"}
	for i := 0; i < MaxFavorites; i++ {
		fav.Add(BookSnapshot{ID: fmt.Sprintf("book-%d", i)})
	}

	fav.Remove("book-0")

	assert.Equal(t, FavoriteAdded, fav.Add(BookSnapshot{ID: "fresh"}))
	assert.Len(t, fav.Books, MaxFavorites)
}
