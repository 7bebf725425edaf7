package repository

import (
	"time"

	"github.com/user/screenlog/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchlistRepository 片单表（movie_watchlist / tv_watchlist）
type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *WatchlistRepository) WithTx(tx *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: tx}
}

// UpsertMovie 加入电影片单。新建时写入传入状态，已存在时保留原状态只刷新时间
func (r *WatchlistRepository) UpsertMovie(e *model.MovieWatchlistEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(e).Error
}

// UpsertTV 加入剧集片单
func (r *WatchlistRepository) UpsertTV(e *model.TVWatchlistEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "tv_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(e).Error
}

// SetMovieStatus 更新电影观看状态
// 状态值不在仓库层校验，由调用方约束在已知集合内
func (r *WatchlistRepository) SetMovieStatus(userID int, movieID int64, status string) error {
	return r.db.Model(&model.MovieWatchlistEntry{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// SetTVStatus 更新剧集观看状态
func (r *WatchlistRepository) SetTVStatus(userID int, tvID int64, status string) error {
	return r.db.Model(&model.TVWatchlistEntry{}).
		Where("user_id = ? AND tv_id = ?", userID, tvID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// SetTVEpisode 更新剧集追看进度
func (r *WatchlistRepository) SetTVEpisode(userID int, tvID int64, episode int) error {
	return r.db.Model(&model.TVWatchlistEntry{}).
		Where("user_id = ? AND tv_id = ?", userID, tvID).
		Updates(map[string]interface{}{
			"current_episode": episode,
			"updated_at":      time.Now(),
		}).Error
}

// RemoveMovie 移出电影片单，快照保留（可能仍被评分引用）
func (r *WatchlistRepository) RemoveMovie(userID int, movieID int64) error {
	return r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&model.MovieWatchlistEntry{}).Error
}

// RemoveTV 移出剧集片单
func (r *WatchlistRepository) RemoveTV(userID int, tvID int64) error {
	return r.db.Where("user_id = ? AND tv_id = ?", userID, tvID).
		Delete(&model.TVWatchlistEntry{}).Error
}

// ListMovies 获取用户电影片单（带快照，按加入时间倒序）
func (r *WatchlistRepository) ListMovies(userID int) ([]*model.MovieWatchlistEntry, error) {
	var entries []*model.MovieWatchlistEntry
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// ListTV 获取用户剧集片单
func (r *WatchlistRepository) ListTV(userID int) ([]*model.TVWatchlistEntry, error) {
	var entries []*model.TVWatchlistEntry
	err := r.db.Preload("Show").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// IsMovieListed 电影是否已在片单
func (r *WatchlistRepository) IsMovieListed(userID int, movieID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.MovieWatchlistEntry{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	return count > 0, err
}

// IsTVListed 剧集是否已在片单
func (r *WatchlistRepository) IsTVListed(userID int, tvID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.TVWatchlistEntry{}).
		Where("user_id = ? AND tv_id = ?", userID, tvID).
		Count(&count).Error
	return count > 0, err
}

// CountByUser 统计用户片单数量（电影+剧集）
func (r *WatchlistRepository) CountByUser(userID int) (int64, error) {
	var movies, shows int64
	if err := r.db.Model(&model.MovieWatchlistEntry{}).Where("user_id = ?", userID).Count(&movies).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&model.TVWatchlistEntry{}).Where("user_id = ?", userID).Count(&shows).Error; err != nil {
		return 0, err
	}
	return movies + shows, nil
}
