package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/screenlog/internal/config"
	"github.com/user/screenlog/internal/model"
)

func newTestService(apiKey, baseURL string) *TMDBService {
	return NewTMDBService(&config.Config{
		TMDBAPIKey:  apiKey,
		TMDBBaseURL: baseURL,
	})
}

func TestTrendingWithoutAPIKeyReturnsFallback(t *testing.T) {
	// 没有密钥时不应发出任何网络请求
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer upstream.Close()

	svc := newTestService("", upstream.URL)
	result := svc.Trending(model.KindMovie, "week")

	require.NotNil(t, result)
	assert.Len(t, result.Results, 10)
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestTrendingUpstreamErrorReturnsFallback(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := newTestService("test-key", upstream.URL)
	result := svc.Trending(model.KindTV, "day")

	// 非 2xx 与无密钥走同一份占位数据
	require.NotNil(t, result)
	assert.Equal(t, FallbackList(model.KindTV), result)
}

func TestTrendingTransportErrorReturnsFallback(t *testing.T) {
	// 指向一个已关闭的地址
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	svc := newTestService("test-key", upstream.URL)
	result := svc.Trending(model.KindMovie, "week")

	require.NotNil(t, result)
	assert.Equal(t, FallbackList(model.KindMovie), result)
}

func TestTrendingCachesSuccessfulResponse(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		json.NewEncoder(w).Encode(model.PagedResults{
			Page:         1,
			Results:      []model.CatalogItem{{ID: 603, Title: "The Matrix"}},
			TotalPages:   1,
			TotalResults: 1,
		})
	}))
	defer upstream.Close()

	svc := newTestService("test-key", upstream.URL)

	first := svc.Trending(model.KindMovie, "week")
	second := svc.Trending(model.KindMovie, "week")

	// 有效期内的重复查询命中缓存，不再访问上游
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.Len(t, first.Results, 1)
	assert.Equal(t, "The Matrix", first.Results[0].Title)
	assert.Equal(t, first, second)
}

func TestFallbackResultIsNotCached(t *testing.T) {
	var calls int32
	var failing int32 = 1
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if atomic.LoadInt32(&failing) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(model.PagedResults{
			Page: 1, Results: []model.CatalogItem{{ID: 1, Title: "Real"}}, TotalPages: 1, TotalResults: 1,
		})
	}))
	defer upstream.Close()

	svc := newTestService("test-key", upstream.URL)

	degraded := svc.Trending(model.KindMovie, "week")
	assert.Equal(t, FallbackList(model.KindMovie), degraded)

	// 上游恢复后，下一次查询应重新访问而不是命中降级结果
	atomic.StoreInt32(&failing, 0)
	recovered := svc.Trending(model.KindMovie, "week")
	require.Len(t, recovered.Results, 1)
	assert.Equal(t, "Real", recovered.Results[0].Title)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestDetailUpstreamErrorReturnsFallbackShape(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	svc := newTestService("test-key", upstream.URL)

	movie := svc.Detail(model.KindMovie, 42)
	assert.Equal(t, "Sample Movie", movie.Title)
	assert.Equal(t, 120, movie.Runtime)

	show := svc.Detail(model.KindTV, 42)
	assert.Equal(t, "Sample TV Show", show.Name)
	assert.Equal(t, 3, show.NumberOfSeasons)
}

func TestCreditsFallbackAlwaysHasDirector(t *testing.T) {
	svc := newTestService("", "http://unused.invalid")

	credits := svc.Credits(model.KindMovie, 42)
	require.NotNil(t, credits.Director())
}

func TestDiscoverPassesGenreAndPageThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 筛选参数原样透传，不做取值校验
		assert.Equal(t, "28", r.URL.Query().Get("with_genres"))
		assert.Equal(t, "99", r.URL.Query().Get("page"))
		assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
		json.NewEncoder(w).Encode(model.PagedResults{Page: 99, TotalPages: 100})
	}))
	defer upstream.Close()

	svc := newTestService("test-key", upstream.URL)
	result := svc.Discover(model.KindMovie, 28, 99)
	assert.Equal(t, 99, result.Page)
}

func TestTrendingNormalizesUnknownWindow(t *testing.T) {
	var path string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode(model.PagedResults{})
	}))
	defer upstream.Close()

	svc := newTestService("test-key", upstream.URL)
	svc.Trending(model.KindMovie, "year")
	assert.Equal(t, "/trending/movie/week", path)
}
