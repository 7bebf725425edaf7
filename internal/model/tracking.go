package model

import (
	"time"

	"github.com/lib/pq"
)

// MediaKind 媒体类型：电影或剧集
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindTV    MediaKind = "tv"
)

// Valid 是否为已知媒体类型
func (k MediaKind) Valid() bool {
	return k == KindMovie || k == KindTV
}

// 观看状态。状态之间不限制流转方向，任意状态可切换为任意状态。
const (
	StatusPlanToWatch = "plan_to_watch"
	StatusWatching    = "watching"
	StatusCompleted   = "completed"
	StatusOnHold      = "on_hold"
	StatusDropped     = "dropped"
)

// MovieSnapshot 电影快照（加入片单/评分时从目录数据落库，只读展示用）
type MovieSnapshot struct {
	ID           int64          `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title"`
	PosterPath   string         `json:"poster_path"`
	BackdropPath string         `json:"backdrop_path"`
	Overview     string         `json:"overview"`
	ReleaseDate  string         `json:"release_date"`
	VoteAverage  float64        `json:"vote_average"`
	Genres       pq.StringArray `json:"genres" gorm:"type:text[]"`
	Popularity   float64        `json:"popularity"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (MovieSnapshot) TableName() string { return "movies" }

// TVShowSnapshot 剧集快照
type TVShowSnapshot struct {
	ID              int64          `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name"`
	PosterPath      string         `json:"poster_path"`
	BackdropPath    string         `json:"backdrop_path"`
	Overview        string         `json:"overview"`
	FirstAirDate    string         `json:"first_air_date"`
	VoteAverage     float64        `json:"vote_average"`
	Genres          pq.StringArray `json:"genres" gorm:"type:text[]"`
	Popularity      float64        `json:"popularity"`
	NumberOfSeasons int            `json:"number_of_seasons"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (TVShowSnapshot) TableName() string { return "tv_shows" }

// MovieWatchlistEntry 电影片单条目，(user_id, movie_id) 唯一
type MovieWatchlistEntry struct {
	ID        int            `json:"id" gorm:"primaryKey"`
	UserID    int            `json:"user_id" gorm:"uniqueIndex:idx_movie_watchlist_user_movie"`
	MovieID   int64          `json:"movie_id" gorm:"uniqueIndex:idx_movie_watchlist_user_movie"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Movie     *MovieSnapshot `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (MovieWatchlistEntry) TableName() string { return "movie_watchlist" }

// TVWatchlistEntry 剧集片单条目，额外记录追到第几集
type TVWatchlistEntry struct {
	ID             int             `json:"id" gorm:"primaryKey"`
	UserID         int             `json:"user_id" gorm:"uniqueIndex:idx_tv_watchlist_user_tv"`
	TVID           int64           `json:"tv_id" gorm:"uniqueIndex:idx_tv_watchlist_user_tv"`
	Status         string          `json:"status"`
	CurrentEpisode int             `json:"current_episode"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Show           *TVShowSnapshot `json:"show,omitempty" gorm:"foreignKey:TVID"`
}

func (TVWatchlistEntry) TableName() string { return "tv_watchlist" }

// MovieRatingEntry 电影评分，(user_id, movie_id) 唯一，重复评分覆盖
type MovieRatingEntry struct {
	ID        int            `json:"id" gorm:"primaryKey"`
	UserID    int            `json:"user_id" gorm:"uniqueIndex:idx_movie_ratings_user_movie"`
	MovieID   int64          `json:"movie_id" gorm:"uniqueIndex:idx_movie_ratings_user_movie"`
	Rating    int            `json:"rating"`
	Review    string         `json:"review"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Movie     *MovieSnapshot `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (MovieRatingEntry) TableName() string { return "movie_ratings" }

// TVRatingEntry 剧集评分
type TVRatingEntry struct {
	ID        int             `json:"id" gorm:"primaryKey"`
	UserID    int             `json:"user_id" gorm:"uniqueIndex:idx_tv_ratings_user_tv"`
	TVID      int64           `json:"tv_id" gorm:"uniqueIndex:idx_tv_ratings_user_tv"`
	Rating    int             `json:"rating"`
	Review    string          `json:"review"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Show      *TVShowSnapshot `json:"show,omitempty" gorm:"foreignKey:TVID"`
}

func (TVRatingEntry) TableName() string { return "tv_ratings" }
