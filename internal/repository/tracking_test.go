package repository

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/screenlog/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 内存 sqlite，行为与 Postgres 在本仓库用到的范围内一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库在连接间不共享，限制为单连接
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func movieSnapshot(id int64, title string) *model.MovieSnapshot {
	return &model.MovieSnapshot{
		ID:          id,
		Title:       title,
		Overview:    "overview",
		ReleaseDate: "1999-03-31",
		VoteAverage: 8.7,
		Genres:      pq.StringArray{"Action", "Science Fiction"},
		Popularity:  83.4,
	}
}

func TestRatingUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	store := NewTrackingStore(db)

	snap := movieSnapshot(42, "The Matrix")
	require.NoError(t, store.SaveMovieRating(snap, &model.MovieRatingEntry{
		UserID: 1, MovieID: 42, Rating: 8, Review: "x",
	}))
	require.NoError(t, store.SaveMovieRating(snap, &model.MovieRatingEntry{
		UserID: 1, MovieID: 42, Rating: 3, Review: "y",
	}))

	// 重复评分覆盖而非追加
	var count int64
	require.NoError(t, db.Model(&model.MovieRatingEntry{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	ratings, err := store.ListMovieRatings(1)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 3, ratings[0].Rating)
	assert.Equal(t, "y", ratings[0].Review)
}

func TestRemoveWatchlistKeepsSnapshotAndRating(t *testing.T) {
	db := newTestDB(t)
	store := NewTrackingStore(db)

	snap := movieSnapshot(42, "The Matrix")
	require.NoError(t, store.SaveMovieToWatchlist(snap, &model.MovieWatchlistEntry{
		UserID: 1, MovieID: 42, Status: model.StatusPlanToWatch,
	}))
	require.NoError(t, store.SaveMovieRating(snap, &model.MovieRatingEntry{
		UserID: 1, MovieID: 42, Rating: 9,
	}))

	require.NoError(t, store.DeleteMovieWatchlistEntry(1, 42))

	// 片单条目已删
	watchlist, err := store.ListMovieWatchlist(1)
	require.NoError(t, err)
	assert.Empty(t, watchlist)

	// 评分与其引用的快照仍在
	ratings, err := store.ListMovieRatings(1)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.EqualValues(t, 42, ratings[0].MovieID)
	require.NotNil(t, ratings[0].Movie)
	assert.Equal(t, "The Matrix", ratings[0].Movie.Title)
}

func TestWatchlistOrderedByCreationDesc(t *testing.T) {
	db := newTestDB(t)
	store := NewTrackingStore(db)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"A", "B", "C"} {
		id := int64(i + 1)
		entry := &model.MovieWatchlistEntry{
			UserID: 1, MovieID: id, Status: model.StatusPlanToWatch,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.SaveMovieToWatchlist(movieSnapshot(id, title), entry))
	}

	entries, err := store.ListMovieWatchlist(1)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// 最近加入的在前：C, B, A
	assert.Equal(t, "C", entries[0].Movie.Title)
	assert.Equal(t, "B", entries[1].Movie.Title)
	assert.Equal(t, "A", entries[2].Movie.Title)
}

func TestWatchlistReAddPreservesStatus(t *testing.T) {
	db := newTestDB(t)
	store := NewTrackingStore(db)

	snap := movieSnapshot(42, "The Matrix")
	require.NoError(t, store.SaveMovieToWatchlist(snap, &model.MovieWatchlistEntry{
		UserID: 1, MovieID: 42, Status: model.StatusPlanToWatch,
	}))
	require.NoError(t, store.SetMovieWatchlistStatus(1, 42, model.StatusWatching))

	// 重复加入不把状态重置回 plan_to_watch
	require.NoError(t, store.SaveMovieToWatchlist(snap, &model.MovieWatchlistEntry{
		UserID: 1, MovieID: 42, Status: model.StatusPlanToWatch,
	}))

	entries, err := store.ListMovieWatchlist(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.StatusWatching, entries[0].Status)
}

func TestStoreAcceptsArbitraryStatus(t *testing.T) {
	db := newTestDB(t)
	store := NewTrackingStore(db)

	require.NoError(t, store.SaveMovieToWatchlist(movieSnapshot(42, "The Matrix"), &model.MovieWatchlistEntry{
		UserID: 1, MovieID: 42, Status: model.StatusPlanToWatch,
	}))

	// 存储层不做状态枚举校验，未知取值照单全收。
	// 这是当前行为的记录，约束加在接入层的 oneof 校验上。
	require.NoError(t, store.SetMovieWatchlistStatus(1, 42, "binge_watching"))

	entries, err := store.ListMovieWatchlist(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "binge_watching", entries[0].Status)
}

func TestSnapshotUpsertRefreshesCatalogFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewSnapshotRepository(db)

	require.NoError(t, repo.UpsertMovie(movieSnapshot(42, "Old Title")))
	require.NoError(t, repo.UpsertMovie(movieSnapshot(42, "New Title")))

	var count int64
	require.NoError(t, db.Model(&model.MovieSnapshot{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	found, err := repo.FindMovie(42)
	require.NoError(t, err)
	assert.Equal(t, "New Title", found.Title)
}

func TestTVWatchlistTracksEpisodeProgress(t *testing.T) {
	db := newTestDB(t)
	store := NewTrackingStore(db)

	snap := &model.TVShowSnapshot{
		ID: 1399, Name: "Game of Thrones", FirstAirDate: "2011-04-17",
		VoteAverage: 8.4, NumberOfSeasons: 8,
	}
	require.NoError(t, store.SaveTVToWatchlist(snap, &model.TVWatchlistEntry{
		UserID: 1, TVID: 1399, Status: model.StatusWatching,
	}))
	require.NoError(t, store.SetTVWatchlistEpisode(1, 1399, 42))

	entries, err := store.ListTVWatchlist(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 42, entries[0].CurrentEpisode)
	require.NotNil(t, entries[0].Show)
	assert.Equal(t, 8, entries[0].Show.NumberOfSeasons)
}

func TestSweepOrphanSnapshots(t *testing.T) {
	db := newTestDB(t)
	store := NewTrackingStore(db)
	snapshots := NewSnapshotRepository(db)

	// 42 被评分引用，7 是孤儿
	require.NoError(t, store.SaveMovieRating(movieSnapshot(42, "Kept"), &model.MovieRatingEntry{
		UserID: 1, MovieID: 42, Rating: 9,
	}))
	require.NoError(t, snapshots.UpsertMovie(movieSnapshot(7, "Orphan")))

	swept, err := snapshots.SweepOrphanMovies()
	require.NoError(t, err)
	assert.EqualValues(t, 1, swept)

	_, err = snapshots.FindMovie(7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	kept, err := snapshots.FindMovie(42)
	require.NoError(t, err)
	assert.Equal(t, "Kept", kept.Title)
}
