package repository

import (
	"time"

	"github.com/user/screenlog/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository 评分表（movie_ratings / tv_ratings）
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *RatingRepository) WithTx(tx *gorm.DB) *RatingRepository {
	return &RatingRepository{db: tx}
}

// UpsertMovie 写入电影评分，重复评分覆盖而非追加
func (r *RatingRepository) UpsertMovie(e *model.MovieRatingEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "updated_at"}),
	}).Create(e).Error
}

// UpsertTV 写入剧集评分
func (r *RatingRepository) UpsertTV(e *model.TVRatingEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "tv_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "updated_at"}),
	}).Create(e).Error
}

// RemoveMovie 删除电影评分
func (r *RatingRepository) RemoveMovie(userID int, movieID int64) error {
	return r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&model.MovieRatingEntry{}).Error
}

// RemoveTV 删除剧集评分
func (r *RatingRepository) RemoveTV(userID int, tvID int64) error {
	return r.db.Where("user_id = ? AND tv_id = ?", userID, tvID).
		Delete(&model.TVRatingEntry{}).Error
}

// ListMovies 获取用户电影评分（带快照，按评分时间倒序）
func (r *RatingRepository) ListMovies(userID int) ([]*model.MovieRatingEntry, error) {
	var entries []*model.MovieRatingEntry
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// ListTV 获取用户剧集评分
func (r *RatingRepository) ListTV(userID int) ([]*model.TVRatingEntry, error) {
	var entries []*model.TVRatingEntry
	err := r.db.Preload("Show").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// TopMovies 用户评分最高的电影（个性化推荐输入）
func (r *RatingRepository) TopMovies(userID int, limit int) ([]*model.MovieRatingEntry, error) {
	var entries []*model.MovieRatingEntry
	err := r.db.Where("user_id = ?", userID).
		Order("rating DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// CountByUser 统计用户评分数量（电影+剧集）
func (r *RatingRepository) CountByUser(userID int) (int64, error) {
	var movies, shows int64
	if err := r.db.Model(&model.MovieRatingEntry{}).Where("user_id = ?", userID).Count(&movies).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&model.TVRatingEntry{}).Where("user_id = ?", userID).Count(&shows).Error; err != nil {
		return 0, err
	}
	return movies + shows, nil
}
