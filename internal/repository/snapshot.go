package repository

import (
	"time"

	"github.com/user/screenlog/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository 目录快照表（movies / tv_shows）
// 快照按 TMDB id 幂等写入，片单和评分行通过外键引用它
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *SnapshotRepository) WithTx(tx *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: tx}
}

// UpsertMovie 写入电影快照，已存在则整体覆盖（目录字段以写入时为准）
func (r *SnapshotRepository) UpsertMovie(m *model.MovieSnapshot) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "poster_path", "backdrop_path", "overview",
			"release_date", "vote_average", "genres", "popularity", "updated_at",
		}),
	}).Create(m).Error
}

// UpsertTV 写入剧集快照
func (r *SnapshotRepository) UpsertTV(s *model.TVShowSnapshot) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "poster_path", "backdrop_path", "overview",
			"first_air_date", "vote_average", "genres", "popularity",
			"number_of_seasons", "updated_at",
		}),
	}).Create(s).Error
}

// FindMovie 查找电影快照
func (r *SnapshotRepository) FindMovie(id int64) (*model.MovieSnapshot, error) {
	var m model.MovieSnapshot
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindTV 查找剧集快照
func (r *SnapshotRepository) FindTV(id int64) (*model.TVShowSnapshot, error) {
	var s model.TVShowSnapshot
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SweepOrphanMovies 清理无任何片单/评分引用的电影快照，返回清理条数
// 快照+条目两步写入不在同一次请求里失败回滚时可能留下孤儿快照，由定时任务兜底
func (r *SnapshotRepository) SweepOrphanMovies() (int64, error) {
	res := r.db.Where(
		"id NOT IN (?) AND id NOT IN (?)",
		r.db.Model(&model.MovieWatchlistEntry{}).Select("movie_id"),
		r.db.Model(&model.MovieRatingEntry{}).Select("movie_id"),
	).Delete(&model.MovieSnapshot{})
	return res.RowsAffected, res.Error
}

// SweepOrphanTVShows 清理无引用的剧集快照
func (r *SnapshotRepository) SweepOrphanTVShows() (int64, error) {
	res := r.db.Where(
		"id NOT IN (?) AND id NOT IN (?)",
		r.db.Model(&model.TVWatchlistEntry{}).Select("tv_id"),
		r.db.Model(&model.TVRatingEntry{}).Select("tv_id"),
	).Delete(&model.TVShowSnapshot{})
	return res.RowsAffected, res.Error
}
