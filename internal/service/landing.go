package service

import (
	"context"

	"github.com/user/screenlog/internal/model"
	"golang.org/x/sync/errgroup"
)

// 首页的三个固定类型栏目
const (
	genreAction = 28
	genreComedy = 35
	genreDrama  = 18
)

// Landing 首页聚合数据
type Landing struct {
	TrendingMovies *model.PagedResults `json:"trending_movies"`
	TrendingShows  *model.PagedResults `json:"trending_shows"`
	ActionMovies   *model.PagedResults `json:"action_movies"`
	ComedyMovies   *model.PagedResults `json:"comedy_movies"`
	DramaMovies    *model.PagedResults `json:"drama_movies"`
}

// LandingService 首页聚合：五个独立查询并发发出，整体等待全部完成。
// 单个查询失败只让该栏目降级为占位数据（网关保证），不影响兄弟查询。
type LandingService struct {
	tmdb *TMDBService
}

func NewLandingService(tmdb *TMDBService) *LandingService {
	return &LandingService{tmdb: tmdb}
}

// Build 组装首页数据
func (s *LandingService) Build(ctx context.Context) *Landing {
	landing := &Landing{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		landing.TrendingMovies = s.tmdb.Trending(model.KindMovie, "week")
		return nil
	})
	g.Go(func() error {
		landing.TrendingShows = s.tmdb.Trending(model.KindTV, "week")
		return nil
	})
	g.Go(func() error {
		landing.ActionMovies = s.tmdb.Discover(model.KindMovie, genreAction, 1)
		return nil
	})
	g.Go(func() error {
		landing.ComedyMovies = s.tmdb.Discover(model.KindMovie, genreComedy, 1)
		return nil
	})
	g.Go(func() error {
		landing.DramaMovies = s.tmdb.Discover(model.KindMovie, genreDrama, 1)
		return nil
	})

	// 网关查询不会返回错误，这里只是等所有栏目就绪
	g.Wait()

	return landing
}
