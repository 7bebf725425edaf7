package repository

import (
	"fmt"

	"github.com/user/screenlog/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// 自动建表
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 迁移全部表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.MovieSnapshot{},
		&model.TVShowSnapshot{},
		&model.MovieWatchlistEntry{},
		&model.TVWatchlistEntry{},
		&model.MovieRatingEntry{},
		&model.TVRatingEntry{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB        *gorm.DB
	User      *UserRepository
	Snapshot  *SnapshotRepository
	Watchlist *WatchlistRepository
	Rating    *RatingRepository
	Tracking  *TrackingStore
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:        db,
		User:      NewUserRepository(db),
		Snapshot:  NewSnapshotRepository(db),
		Watchlist: NewWatchlistRepository(db),
		Rating:    NewRatingRepository(db),
		Tracking:  NewTrackingStore(db),
	}
}
