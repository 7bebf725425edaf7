package service

import (
	"log"
	"time"

	"github.com/user/screenlog/internal/repository"
)

// CleanupService 定时维护任务：清理孤儿快照
// 片单/评分条目删光之后快照行仍留在表里，按小时兜底回收
type CleanupService struct {
	repos *repository.Repositories
	stop  chan struct{}
}

// NewCleanupService 创建清理服务
func NewCleanupService(repos *repository.Repositories) *CleanupService {
	return &CleanupService{
		repos: repos,
		stop:  make(chan struct{}),
	}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	ticker := time.NewTicker(1 * time.Hour)

	// 启动时先运行一次
	go s.runCleanup()

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runCleanup()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop 停止清理任务
func (s *CleanupService) Stop() {
	close(s.stop)
}

func (s *CleanupService) runCleanup() {
	log.Println("[CleanupService] 开始清理孤儿快照...")

	movies, err := s.repos.Snapshot.SweepOrphanMovies()
	if err != nil {
		log.Printf("[CleanupService] 清理电影快照失败: %v", err)
	} else if movies > 0 {
		log.Printf("[CleanupService] 已清理 %d 条无引用的电影快照", movies)
	}

	shows, err := s.repos.Snapshot.SweepOrphanTVShows()
	if err != nil {
		log.Printf("[CleanupService] 清理剧集快照失败: %v", err)
	} else if shows > 0 {
		log.Printf("[CleanupService] 已清理 %d 条无引用的剧集快照", shows)
	}
}
