package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/screenlog/internal/model"
)

func TestFallbackListShape(t *testing.T) {
	list := FallbackList(model.KindMovie)

	require.Len(t, list.Results, 10)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 1, list.TotalPages)
	assert.Equal(t, 10, list.TotalResults)

	for _, item := range list.Results {
		assert.NotZero(t, item.ID)
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.Overview)
		assert.NotEmpty(t, item.ReleaseDate)
		assert.Equal(t, 7.5, item.VoteAverage)
		assert.NotEmpty(t, item.GenreIDs)
	}
}

func TestFallbackListTVUsesNameField(t *testing.T) {
	list := FallbackList(model.KindTV)

	for _, item := range list.Results {
		assert.Empty(t, item.Title)
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.FirstAirDate)
		assert.Equal(t, "tv", item.MediaType)
	}
}

func TestFallbackListDeterministic(t *testing.T) {
	// 占位数据是确定性的，同样的调用结果完全一致
	assert.Equal(t, FallbackList(model.KindMovie), FallbackList(model.KindMovie))
	assert.Equal(t, FallbackDetail(model.KindTV), FallbackDetail(model.KindTV))
	assert.Equal(t, FallbackCredits(), FallbackCredits())
}

func TestFallbackDetailMovie(t *testing.T) {
	d := FallbackDetail(model.KindMovie)

	assert.Equal(t, "Sample Movie", d.Title)
	assert.Empty(t, d.Name)
	assert.Equal(t, 120, d.Runtime)
	assert.Zero(t, d.NumberOfSeasons)
	assert.EqualValues(t, 100000000, d.Budget)
	assert.EqualValues(t, 300000000, d.Revenue)
	assert.NotEmpty(t, d.Genres)
	assert.Equal(t, "Released", d.Status)
}

func TestFallbackDetailTV(t *testing.T) {
	d := FallbackDetail(model.KindTV)

	assert.Equal(t, "Sample TV Show", d.Name)
	assert.Empty(t, d.Title)
	assert.Zero(t, d.Runtime)
	assert.Equal(t, 3, d.NumberOfSeasons)
	assert.Equal(t, 24, d.NumberOfEpisodes)
}

func TestFallbackCreditsHasDirector(t *testing.T) {
	credits := FallbackCredits()

	require.Len(t, credits.Cast, 5)
	require.Len(t, credits.Crew, 5)

	// 依赖导演字段的展示逻辑在降级时也必须可用
	director := credits.Director()
	require.NotNil(t, director)
	assert.Equal(t, "Director", director.Job)
	assert.Equal(t, "Directing", director.Department)
}
