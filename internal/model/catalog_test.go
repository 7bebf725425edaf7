package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "The Matrix", CatalogItem{Title: "The Matrix"}.DisplayTitle())
	assert.Equal(t, "Breaking Bad", CatalogItem{Name: "Breaking Bad"}.DisplayTitle())
	// 电影字段优先
	assert.Equal(t, "A", CatalogItem{Title: "A", Name: "B"}.DisplayTitle())
}

func TestCreditsDirector(t *testing.T) {
	credits := &Credits{
		Crew: []CrewMember{
			{Name: "Jane", Job: "Producer"},
			{Name: "Lana", Job: "Director", Department: "Directing"},
		},
	}

	director := credits.Director()
	require.NotNil(t, director)
	assert.Equal(t, "Lana", director.Name)

	assert.Nil(t, (&Credits{}).Director())
}

func TestMediaKindValid(t *testing.T) {
	assert.True(t, KindMovie.Valid())
	assert.True(t, KindTV.Valid())
	assert.False(t, MediaKind("podcast").Valid())
	assert.False(t, MediaKind("").Valid())
}

func TestGenreNames(t *testing.T) {
	d := CatalogDetail{Genres: []Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}}
	assert.Equal(t, []string{"Action", "Drama"}, d.GenreNames())
	assert.Empty(t, CatalogDetail{}.GenreNames())
}
