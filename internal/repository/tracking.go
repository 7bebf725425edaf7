package repository

import (
	"github.com/user/screenlog/internal/model"
	"gorm.io/gorm"
)

// TrackingStore 片单/评分的聚合入口
// 快照写入与条目写入在同一事务内提交，避免条目失败后留下孤儿快照
type TrackingStore struct {
	db        *gorm.DB
	snapshots *SnapshotRepository
	watchlist *WatchlistRepository
	ratings   *RatingRepository
}

func NewTrackingStore(db *gorm.DB) *TrackingStore {
	return &TrackingStore{
		db:        db,
		snapshots: NewSnapshotRepository(db),
		watchlist: NewWatchlistRepository(db),
		ratings:   NewRatingRepository(db),
	}
}

// SaveMovieToWatchlist 快照 + 片单条目，单事务
func (s *TrackingStore) SaveMovieToWatchlist(snap *model.MovieSnapshot, entry *model.MovieWatchlistEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshots.WithTx(tx).UpsertMovie(snap); err != nil {
			return err
		}
		return s.watchlist.WithTx(tx).UpsertMovie(entry)
	})
}

// SaveTVToWatchlist 快照 + 片单条目，单事务
func (s *TrackingStore) SaveTVToWatchlist(snap *model.TVShowSnapshot, entry *model.TVWatchlistEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshots.WithTx(tx).UpsertTV(snap); err != nil {
			return err
		}
		return s.watchlist.WithTx(tx).UpsertTV(entry)
	})
}

// SaveMovieRating 快照 + 评分条目，单事务
func (s *TrackingStore) SaveMovieRating(snap *model.MovieSnapshot, entry *model.MovieRatingEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshots.WithTx(tx).UpsertMovie(snap); err != nil {
			return err
		}
		return s.ratings.WithTx(tx).UpsertMovie(entry)
	})
}

// SaveTVRating 快照 + 评分条目，单事务
func (s *TrackingStore) SaveTVRating(snap *model.TVShowSnapshot, entry *model.TVRatingEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.snapshots.WithTx(tx).UpsertTV(snap); err != nil {
			return err
		}
		return s.ratings.WithTx(tx).UpsertTV(entry)
	})
}

func (s *TrackingStore) SetMovieWatchlistStatus(userID int, movieID int64, status string) error {
	return s.watchlist.SetMovieStatus(userID, movieID, status)
}

func (s *TrackingStore) SetTVWatchlistStatus(userID int, tvID int64, status string) error {
	return s.watchlist.SetTVStatus(userID, tvID, status)
}

func (s *TrackingStore) SetTVWatchlistEpisode(userID int, tvID int64, episode int) error {
	return s.watchlist.SetTVEpisode(userID, tvID, episode)
}

func (s *TrackingStore) DeleteMovieWatchlistEntry(userID int, movieID int64) error {
	return s.watchlist.RemoveMovie(userID, movieID)
}

func (s *TrackingStore) DeleteTVWatchlistEntry(userID int, tvID int64) error {
	return s.watchlist.RemoveTV(userID, tvID)
}

func (s *TrackingStore) DeleteMovieRating(userID int, movieID int64) error {
	return s.ratings.RemoveMovie(userID, movieID)
}

func (s *TrackingStore) DeleteTVRating(userID int, tvID int64) error {
	return s.ratings.RemoveTV(userID, tvID)
}

func (s *TrackingStore) ListMovieWatchlist(userID int) ([]*model.MovieWatchlistEntry, error) {
	return s.watchlist.ListMovies(userID)
}

func (s *TrackingStore) ListTVWatchlist(userID int) ([]*model.TVWatchlistEntry, error) {
	return s.watchlist.ListTV(userID)
}

func (s *TrackingStore) ListMovieRatings(userID int) ([]*model.MovieRatingEntry, error) {
	return s.ratings.ListMovies(userID)
}

func (s *TrackingStore) ListTVRatings(userID int) ([]*model.TVRatingEntry, error) {
	return s.ratings.ListTV(userID)
}
