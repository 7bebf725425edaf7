package service

import (
	"fmt"
	"log"
	"time"

	"github.com/user/screenlog/internal/model"
	"github.com/user/screenlog/internal/repository"
	"github.com/user/screenlog/internal/utils"
	"golang.org/x/sync/errgroup"
)

// 个性化推荐结果缓存 15 分钟，避免每次刷新都打一轮上游
const recommendCacheTTL = 15 * time.Minute

// RecommendService 个性化推荐：取用户评分最高的 5 部电影，逐个请求上游
// 的关联推荐，合并去重后截取前 10 条。没有评分时退回全类型周榜。
type RecommendService struct {
	ratings *repository.RatingRepository
	tmdb    *TMDBService
}

func NewRecommendService(ratings *repository.RatingRepository, tmdb *TMDBService) *RecommendService {
	return &RecommendService{ratings: ratings, tmdb: tmdb}
}

// ForUser 为用户生成推荐列表
func (s *RecommendService) ForUser(id Identity) ([]model.CatalogItem, error) {
	if id.Anonymous() {
		return nil, ErrUnauthenticated
	}

	cacheKey := fmt.Sprintf("recommend:%d", id.UserID)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		return cached.([]model.CatalogItem), nil
	}

	topRated, err := s.ratings.TopMovies(id.UserID, 5)
	if err != nil {
		return nil, &PersistenceError{Op: "top_rated_movies", Err: err}
	}

	var items []model.CatalogItem
	if len(topRated) == 0 {
		// 没有评分，退回趋势榜
		items = s.tmdb.TrendingAll().Results
	} else {
		// 每部电影一个独立查询，并发取回后按评分高低的顺序合并
		results := make([]*model.PagedResults, len(topRated))
		var g errgroup.Group
		for i, entry := range topRated {
			g.Go(func() error {
				results[i] = s.tmdb.Recommendations(model.KindMovie, entry.MovieID)
				return nil
			})
		}
		g.Wait()

		seen := make(map[int64]bool)
		for _, page := range results {
			if page == nil {
				continue
			}
			for _, item := range page.Results {
				if seen[item.ID] {
					continue
				}
				seen[item.ID] = true
				items = append(items, item)
			}
		}
		if len(items) > 10 {
			items = items[:10]
		}
		log.Printf("[Recommend] 用户 %d：基于 %d 条评分生成 %d 条推荐", id.UserID, len(topRated), len(items))
	}

	utils.CacheSet(cacheKey, items, recommendCacheTTL)
	return items, nil
}

// Invalidate 评分变化后使缓存失效，下次请求重新生成
func (s *RecommendService) Invalidate(userID int) {
	utils.CacheDelete(fmt.Sprintf("recommend:%d", userID))
}
