package model

// CatalogItem 目录条目（TMDB 列表接口返回的电影/剧集/人物）
type CatalogItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	MediaType    string  `json:"media_type,omitempty"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// DisplayTitle 电影取 title，剧集取 name
func (i CatalogItem) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// PagedResults 带分页的列表响应
type PagedResults struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// Genre 类型/题材
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList 类型列表响应
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// CatalogDetail 单个条目的详情（电影与剧集共用，按 media type 填充对应字段）
type CatalogDetail struct {
	CatalogItem
	Genres           []Genre `json:"genres"`
	Tagline          string  `json:"tagline,omitempty"`
	Status           string  `json:"status,omitempty"`
	Runtime          int     `json:"runtime,omitempty"`
	Budget           int64   `json:"budget,omitempty"`
	Revenue          int64   `json:"revenue,omitempty"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
}

// GenreNames 详情中的类型名称列表（落库快照时使用）
func (d CatalogDetail) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// CastMember 演员
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember 职员
type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// Credits 演职员表
type Credits struct {
	ID   int64        `json:"id,omitempty"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Director 查找导演，找不到时返回 nil
func (c *Credits) Director() *CrewMember {
	for i := range c.Crew {
		if c.Crew[i].Job == "Director" {
			return &c.Crew[i]
		}
	}
	return nil
}
