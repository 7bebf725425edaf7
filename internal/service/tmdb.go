package service

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/user/screenlog/internal/config"
	"github.com/user/screenlog/internal/model"
	"github.com/user/screenlog/internal/utils"
	"golang.org/x/sync/singleflight"
)

// 成功响应的缓存有效期，窗口内重复查询不再访问上游
const catalogCacheTTL = time.Hour

// TMDBService 目录网关：封装 TMDB 的查询接口
//
// 对调用方的约定是"永远降级、永不失败"：密钥缺失、上游非 2xx、网络错误
// 都只记录日志并返回同形状的占位数据，查询方法不返回 error，上层渲染
// 无需做失败分支。降级结果不进缓存，下一次查询仍会尝试上游。
type TMDBService struct {
	config *config.Config
	client *utils.HTTPClient
	group  singleflight.Group

	lists   *utils.ResponseCache[*model.PagedResults]
	details *utils.ResponseCache[*model.CatalogDetail]
	credits *utils.ResponseCache[*model.Credits]
	genres  *utils.ResponseCache[*model.GenreList]
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		config:  cfg,
		client:  utils.NewHTTPClient(),
		lists:   utils.NewResponseCache[*model.PagedResults](1000, catalogCacheTTL),
		details: utils.NewResponseCache[*model.CatalogDetail](1000, catalogCacheTTL),
		credits: utils.NewResponseCache[*model.Credits](1000, catalogCacheTTL),
		genres:  utils.NewResponseCache[*model.GenreList](10, catalogCacheTTL),
	}
}

// Trending 趋势榜单，window 取 day 或 week
func (s *TMDBService) Trending(kind model.MediaKind, window string) *model.PagedResults {
	if window != "day" && window != "week" {
		window = "week"
	}
	return s.fetchList(fmt.Sprintf("/trending/%s/%s", kind, window), nil, kind)
}

// TrendingAll 全类型周榜（无个性化数据时的推荐兜底）
func (s *TMDBService) TrendingAll() *model.PagedResults {
	return s.fetchList("/trending/all/week", nil, model.KindMovie)
}

// Discover 按类型筛选，genre 与 page 原样透传，取值范围是上游的事
func (s *TMDBService) Discover(kind model.MediaKind, genreID, page int) *model.PagedResults {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", "popularity.desc")
	return s.fetchList("/discover/"+string(kind), params, kind)
}

// Detail 单个条目详情
func (s *TMDBService) Detail(kind model.MediaKind, id int64) *model.CatalogDetail {
	return s.fetchDetail(fmt.Sprintf("/%s/%d", kind, id), kind)
}

// Credits 演职员表
func (s *TMDBService) Credits(kind model.MediaKind, id int64) *model.Credits {
	return s.fetchCredits(fmt.Sprintf("/%s/%d/credits", kind, id))
}

// Similar 相似条目
func (s *TMDBService) Similar(kind model.MediaKind, id int64) *model.PagedResults {
	return s.fetchList(fmt.Sprintf("/%s/%d/similar", kind, id), nil, kind)
}

// Recommendations 上游的关联推荐
func (s *TMDBService) Recommendations(kind model.MediaKind, id int64) *model.PagedResults {
	return s.fetchList(fmt.Sprintf("/%s/%d/recommendations", kind, id), nil, kind)
}

// SearchMulti 跨电影/剧集/人物搜索
func (s *TMDBService) SearchMulti(query string, page int) *model.PagedResults {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	return s.fetchList("/search/multi", params, model.KindMovie)
}

// Genres 类型列表
func (s *TMDBService) Genres(kind model.MediaKind) *model.GenreList {
	return s.fetchGenres(fmt.Sprintf("/genre/%s/list", kind))
}

// Upcoming 即将上映的电影
func (s *TMDBService) Upcoming() *model.PagedResults {
	return s.fetchList("/movie/upcoming", nil, model.KindMovie)
}

// NowPlaying 正在上映的电影
func (s *TMDBService) NowPlaying() *model.PagedResults {
	return s.fetchList("/movie/now_playing", nil, model.KindMovie)
}

// TopRated 高分榜
func (s *TMDBService) TopRated(kind model.MediaKind) *model.PagedResults {
	return s.fetchList(fmt.Sprintf("/%s/top_rated", kind), nil, kind)
}

// buildURL 拼接上游地址，认证用 api_key 查询参数
func (s *TMDBService) buildURL(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.config.TMDBAPIKey)
	return s.config.TMDBBaseURL + endpoint + "?" + params.Encode()
}

func cacheKey(endpoint string, params url.Values) string {
	if params == nil {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

func (s *TMDBService) fetchList(endpoint string, params url.Values, kind model.MediaKind) *model.PagedResults {
	key := cacheKey(endpoint, params)
	if cached, ok := s.lists.Get(key); ok {
		return cached
	}
	if s.config.TMDBAPIKey == "" {
		log.Printf("[TMDB] 未配置 API Key，%s 返回占位数据", endpoint)
		return FallbackList(kind)
	}

	// singleflight 合并并发的相同未命中请求
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		var out model.PagedResults
		if err := s.client.GetJSON(s.buildURL(endpoint, params), &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		log.Printf("[TMDB] 请求 %s 失败，返回占位数据: %v", endpoint, err)
		return FallbackList(kind)
	}

	result := val.(*model.PagedResults)
	s.lists.Set(key, result)
	return result
}

func (s *TMDBService) fetchDetail(endpoint string, kind model.MediaKind) *model.CatalogDetail {
	if cached, ok := s.details.Get(endpoint); ok {
		return cached
	}
	if s.config.TMDBAPIKey == "" {
		log.Printf("[TMDB] 未配置 API Key，%s 返回占位数据", endpoint)
		return FallbackDetail(kind)
	}

	val, err, _ := s.group.Do(endpoint, func() (interface{}, error) {
		var out model.CatalogDetail
		if err := s.client.GetJSON(s.buildURL(endpoint, nil), &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		log.Printf("[TMDB] 请求 %s 失败，返回占位数据: %v", endpoint, err)
		return FallbackDetail(kind)
	}

	result := val.(*model.CatalogDetail)
	s.details.Set(endpoint, result)
	return result
}

func (s *TMDBService) fetchCredits(endpoint string) *model.Credits {
	if cached, ok := s.credits.Get(endpoint); ok {
		return cached
	}
	if s.config.TMDBAPIKey == "" {
		log.Printf("[TMDB] 未配置 API Key，%s 返回占位数据", endpoint)
		return FallbackCredits()
	}

	val, err, _ := s.group.Do(endpoint, func() (interface{}, error) {
		var out model.Credits
		if err := s.client.GetJSON(s.buildURL(endpoint, nil), &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		log.Printf("[TMDB] 请求 %s 失败，返回占位数据: %v", endpoint, err)
		return FallbackCredits()
	}

	result := val.(*model.Credits)
	s.credits.Set(endpoint, result)
	return result
}

func (s *TMDBService) fetchGenres(endpoint string) *model.GenreList {
	if cached, ok := s.genres.Get(endpoint); ok {
		return cached
	}
	if s.config.TMDBAPIKey == "" {
		log.Printf("[TMDB] 未配置 API Key，%s 返回占位数据", endpoint)
		return FallbackGenres()
	}

	val, err, _ := s.group.Do(endpoint, func() (interface{}, error) {
		var out model.GenreList
		if err := s.client.GetJSON(s.buildURL(endpoint, nil), &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		log.Printf("[TMDB] 请求 %s 失败，返回占位数据: %v", endpoint, err)
		return FallbackGenres()
	}

	result := val.(*model.GenreList)
	s.genres.Set(endpoint, result)
	return result
}
