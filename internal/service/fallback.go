package service

import (
	"fmt"

	"github.com/user/screenlog/internal/model"
)

// 占位数据工厂。上游不可用（密钥缺失、非 2xx、网络错误）时网关返回这里的
// 数据，形状与真实响应完全一致，调用方无需区分真假。内容是确定性的，
// 同样的调用永远得到同样的结果。

const (
	fallbackOverview = "This is a sample description for when the API is unavailable."
	fallbackDate     = "2023-01-01"
)

// FallbackList 列表接口的占位响应：固定 10 条
func FallbackList(kind model.MediaKind) *model.PagedResults {
	results := make([]model.CatalogItem, 0, 10)
	for i := 1; i <= 10; i++ {
		item := model.CatalogItem{
			ID:          int64(i),
			Overview:    fallbackOverview,
			VoteAverage: 7.5,
			Popularity:  100,
			GenreIDs:    []int{28, 12, 16},
			MediaType:   string(kind),
		}
		if kind == model.KindTV {
			item.Name = fmt.Sprintf("Sample Show %d", i)
			item.FirstAirDate = fallbackDate
		} else {
			item.Title = fmt.Sprintf("Sample Movie %d", i)
			item.ReleaseDate = fallbackDate
		}
		results = append(results, item)
	}
	return &model.PagedResults{
		Page:         1,
		Results:      results,
		TotalPages:   1,
		TotalResults: 10,
	}
}

// FallbackDetail 详情接口的占位响应
func FallbackDetail(kind model.MediaKind) *model.CatalogDetail {
	d := &model.CatalogDetail{
		CatalogItem: model.CatalogItem{
			ID:          1,
			Overview:    fallbackOverview,
			VoteAverage: 7.5,
			Popularity:  100,
		},
		Genres: []model.Genre{
			{ID: 28, Name: "Action"},
			{ID: 12, Name: "Adventure"},
		},
		Tagline: "Sample tagline",
		Status:  "Released",
	}
	if kind == model.KindTV {
		d.Name = "Sample TV Show"
		d.FirstAirDate = fallbackDate
		d.NumberOfSeasons = 3
		d.NumberOfEpisodes = 24
	} else {
		d.Title = "Sample Movie"
		d.ReleaseDate = fallbackDate
		d.Runtime = 120
		d.Budget = 100000000
		d.Revenue = 300000000
	}
	return d
}

// FallbackCredits 演职员接口的占位响应
// 第一个职员固定是导演，依赖导演字段的展示逻辑不会因降级而出错
func FallbackCredits() *model.Credits {
	credits := &model.Credits{
		Cast: make([]model.CastMember, 0, 5),
		Crew: make([]model.CrewMember, 0, 5),
	}
	for i := 1; i <= 5; i++ {
		credits.Cast = append(credits.Cast, model.CastMember{
			ID:        int64(i),
			Name:      fmt.Sprintf("Actor %d", i),
			Character: fmt.Sprintf("Character %d", i),
			Order:     i - 1,
		})
		crew := model.CrewMember{
			ID:         int64(i),
			Name:       fmt.Sprintf("Crew Member %d", i),
			Job:        fmt.Sprintf("Job %d", i-1),
			Department: fmt.Sprintf("Department %d", i-1),
		}
		if i == 1 {
			crew.Job = "Director"
			crew.Department = "Directing"
		}
		credits.Crew = append(credits.Crew, crew)
	}
	return credits
}

// FallbackGenres 类型列表的占位响应
func FallbackGenres() *model.GenreList {
	return &model.GenreList{
		Genres: []model.Genre{
			{ID: 28, Name: "Action"},
			{ID: 12, Name: "Adventure"},
			{ID: 35, Name: "Comedy"},
			{ID: 18, Name: "Drama"},
		},
	}
}
