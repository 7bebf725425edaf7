package service

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/user/screenlog/internal/model"
)

var (
	// ErrUnauthenticated 未登录访问，在任何数据库操作之前拦截
	ErrUnauthenticated = errors.New("未登录，请先建立会话")
	// ErrInvalidRating 评分必须是 1-10 的整数，0 视为未评分
	ErrInvalidRating = errors.New("评分必须在 1 到 10 之间")
	// ErrUnknownKind 未知媒体类型
	ErrUnknownKind = errors.New("未知的媒体类型")
)

// PersistenceError 后端写入/读取被拒绝。只向上传播一层，由直接调用方
// 决定提示用户还是重试，本层不做自动重试。
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("持久化失败 (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Identity 已认证身份。登录成功时构造，退出登录后不再传入。
// 所有片单/评分操作都显式接收它，不依赖全局会话状态。
type Identity struct {
	UserID int
	Email  string
}

// Anonymous 是否未登录
func (id Identity) Anonymous() bool { return id.UserID == 0 }

// CatalogSnapshot 发生片单/评分操作时调用方已知的目录字段，
// 原样落库为只读快照，展示片单时不必再查目录
type CatalogSnapshot struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Name            string   `json:"name"`
	PosterPath      string   `json:"poster_path"`
	BackdropPath    string   `json:"backdrop_path"`
	Overview        string   `json:"overview"`
	ReleaseDate     string   `json:"release_date"`
	FirstAirDate    string   `json:"first_air_date"`
	VoteAverage     float64  `json:"vote_average"`
	Genres          []string `json:"genres"`
	Popularity      float64  `json:"popularity"`
	NumberOfSeasons int      `json:"number_of_seasons"`
}

// TrackingBackend 追踪数据的持久化接口，由 repository.TrackingStore 实现
type TrackingBackend interface {
	SaveMovieToWatchlist(snap *model.MovieSnapshot, entry *model.MovieWatchlistEntry) error
	SaveTVToWatchlist(snap *model.TVShowSnapshot, entry *model.TVWatchlistEntry) error
	SaveMovieRating(snap *model.MovieSnapshot, entry *model.MovieRatingEntry) error
	SaveTVRating(snap *model.TVShowSnapshot, entry *model.TVRatingEntry) error
	SetMovieWatchlistStatus(userID int, movieID int64, status string) error
	SetTVWatchlistStatus(userID int, tvID int64, status string) error
	SetTVWatchlistEpisode(userID int, tvID int64, episode int) error
	DeleteMovieWatchlistEntry(userID int, movieID int64) error
	DeleteTVWatchlistEntry(userID int, tvID int64) error
	DeleteMovieRating(userID int, movieID int64) error
	DeleteTVRating(userID int, tvID int64) error
	ListMovieWatchlist(userID int) ([]*model.MovieWatchlistEntry, error)
	ListTVWatchlist(userID int) ([]*model.TVWatchlistEntry, error)
	ListMovieRatings(userID int) ([]*model.MovieRatingEntry, error)
	ListTVRatings(userID int) ([]*model.TVRatingEntry, error)
}

// Tracker 片单/评分的业务入口：身份校验、参数校验、错误归类
type Tracker struct {
	store TrackingBackend
}

func NewTracker(store TrackingBackend) *Tracker {
	return &Tracker{store: store}
}

// AddToWatchlist 加入片单。先落快照再落条目，新条目状态为 plan_to_watch
func (t *Tracker) AddToWatchlist(id Identity, kind model.MediaKind, item CatalogSnapshot) error {
	if id.Anonymous() {
		return ErrUnauthenticated
	}
	switch kind {
	case model.KindMovie:
		entry := &model.MovieWatchlistEntry{
			UserID:  id.UserID,
			MovieID: item.ID,
			Status:  model.StatusPlanToWatch,
		}
		if err := t.store.SaveMovieToWatchlist(movieSnapshot(item), entry); err != nil {
			return &PersistenceError{Op: "add_movie_watchlist", Err: err}
		}
		return nil
	case model.KindTV:
		entry := &model.TVWatchlistEntry{
			UserID: id.UserID,
			TVID:   item.ID,
			Status: model.StatusPlanToWatch,
		}
		if err := t.store.SaveTVToWatchlist(tvSnapshot(item), entry); err != nil {
			return &PersistenceError{Op: "add_tv_watchlist", Err: err}
		}
		return nil
	default:
		return ErrUnknownKind
	}
}

// UpdateWatchlistStatus 切换观看状态。状态之间任意流转，本层不校验
// status 的取值，调用方负责把输入限制在已知集合内。
func (t *Tracker) UpdateWatchlistStatus(id Identity, kind model.MediaKind, itemID int64, status string) error {
	if id.Anonymous() {
		return ErrUnauthenticated
	}
	var err error
	switch kind {
	case model.KindMovie:
		err = t.store.SetMovieWatchlistStatus(id.UserID, itemID, status)
	case model.KindTV:
		err = t.store.SetTVWatchlistStatus(id.UserID, itemID, status)
	default:
		return ErrUnknownKind
	}
	if err != nil {
		return &PersistenceError{Op: "update_watchlist_status", Err: err}
	}
	return nil
}

// UpdateEpisodeProgress 更新剧集追看进度（仅剧集）
func (t *Tracker) UpdateEpisodeProgress(id Identity, tvID int64, episode int) error {
	if id.Anonymous() {
		return ErrUnauthenticated
	}
	if err := t.store.SetTVWatchlistEpisode(id.UserID, tvID, episode); err != nil {
		return &PersistenceError{Op: "update_episode_progress", Err: err}
	}
	return nil
}

// RemoveFromWatchlist 移出片单。只删条目，快照保留给可能存在的评分引用
func (t *Tracker) RemoveFromWatchlist(id Identity, kind model.MediaKind, itemID int64) error {
	if id.Anonymous() {
		return ErrUnauthenticated
	}
	var err error
	switch kind {
	case model.KindMovie:
		err = t.store.DeleteMovieWatchlistEntry(id.UserID, itemID)
	case model.KindTV:
		err = t.store.DeleteTVWatchlistEntry(id.UserID, itemID)
	default:
		return ErrUnknownKind
	}
	if err != nil {
		return &PersistenceError{Op: "remove_watchlist", Err: err}
	}
	return nil
}

// RateItem 评分。重复评分覆盖原值，评分范围 1-10
func (t *Tracker) RateItem(id Identity, kind model.MediaKind, item CatalogSnapshot, rating int, review string) error {
	if id.Anonymous() {
		return ErrUnauthenticated
	}
	if rating < 1 || rating > 10 {
		return ErrInvalidRating
	}
	switch kind {
	case model.KindMovie:
		entry := &model.MovieRatingEntry{
			UserID:  id.UserID,
			MovieID: item.ID,
			Rating:  rating,
			Review:  review,
		}
		if err := t.store.SaveMovieRating(movieSnapshot(item), entry); err != nil {
			return &PersistenceError{Op: "rate_movie", Err: err}
		}
		return nil
	case model.KindTV:
		entry := &model.TVRatingEntry{
			UserID: id.UserID,
			TVID:   item.ID,
			Rating: rating,
			Review: review,
		}
		if err := t.store.SaveTVRating(tvSnapshot(item), entry); err != nil {
			return &PersistenceError{Op: "rate_tv", Err: err}
		}
		return nil
	default:
		return ErrUnknownKind
	}
}

// RemoveRating 删除评分
func (t *Tracker) RemoveRating(id Identity, kind model.MediaKind, itemID int64) error {
	if id.Anonymous() {
		return ErrUnauthenticated
	}
	var err error
	switch kind {
	case model.KindMovie:
		err = t.store.DeleteMovieRating(id.UserID, itemID)
	case model.KindTV:
		err = t.store.DeleteTVRating(id.UserID, itemID)
	default:
		return ErrUnknownKind
	}
	if err != nil {
		return &PersistenceError{Op: "remove_rating", Err: err}
	}
	return nil
}

// MovieWatchlist 电影片单（带快照，最近加入的在前）
func (t *Tracker) MovieWatchlist(id Identity) ([]*model.MovieWatchlistEntry, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}
	entries, err := t.store.ListMovieWatchlist(id.UserID)
	if err != nil {
		return nil, &PersistenceError{Op: "list_movie_watchlist", Err: err}
	}
	return entries, nil
}

// TVWatchlist 剧集片单
func (t *Tracker) TVWatchlist(id Identity) ([]*model.TVWatchlistEntry, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}
	entries, err := t.store.ListTVWatchlist(id.UserID)
	if err != nil {
		return nil, &PersistenceError{Op: "list_tv_watchlist", Err: err}
	}
	return entries, nil
}

// MovieRatings 电影评分列表
func (t *Tracker) MovieRatings(id Identity) ([]*model.MovieRatingEntry, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}
	entries, err := t.store.ListMovieRatings(id.UserID)
	if err != nil {
		return nil, &PersistenceError{Op: "list_movie_ratings", Err: err}
	}
	return entries, nil
}

// TVRatings 剧集评分列表
func (t *Tracker) TVRatings(id Identity) ([]*model.TVRatingEntry, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}
	entries, err := t.store.ListTVRatings(id.UserID)
	if err != nil {
		return nil, &PersistenceError{Op: "list_tv_ratings", Err: err}
	}
	return entries, nil
}

func movieSnapshot(item CatalogSnapshot) *model.MovieSnapshot {
	return &model.MovieSnapshot{
		ID:           item.ID,
		Title:        item.Title,
		PosterPath:   item.PosterPath,
		BackdropPath: item.BackdropPath,
		Overview:     item.Overview,
		ReleaseDate:  item.ReleaseDate,
		VoteAverage:  item.VoteAverage,
		Genres:       pq.StringArray(item.Genres),
		Popularity:   item.Popularity,
	}
}

func tvSnapshot(item CatalogSnapshot) *model.TVShowSnapshot {
	return &model.TVShowSnapshot{
		ID:              item.ID,
		Name:            item.Name,
		PosterPath:      item.PosterPath,
		BackdropPath:    item.BackdropPath,
		Overview:        item.Overview,
		FirstAirDate:    item.FirstAirDate,
		VoteAverage:     item.VoteAverage,
		Genres:          pq.StringArray(item.Genres),
		Popularity:      item.Popularity,
		NumberOfSeasons: item.NumberOfSeasons,
	}
}
