package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/screenlog/internal/model"
	"github.com/user/screenlog/internal/utils"
)

// 目录查询接口。网关保证永远返回形状正确的数据，这里不存在 5xx 分支，
// 只有参数本身不合法才会 400。

// parseKind 解析路径里的媒体类型
func parseKind(c *gin.Context) (model.MediaKind, bool) {
	kind := model.MediaKind(c.Param("kind"))
	if !kind.Valid() {
		utils.BadRequest(c, "媒体类型必须是 movie 或 tv")
		return "", false
	}
	return kind, true
}

// parseItemID 解析路径里的条目 ID
func parseItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.BadRequest(c, "条目 ID 不合法")
		return 0, false
	}
	return id, true
}

// GetLanding 首页聚合
func (h *Handler) GetLanding(c *gin.Context) {
	utils.Success(c, h.Landing.Build(c.Request.Context()))
}

// GetTrending 趋势榜单
func (h *Handler) GetTrending(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	window := c.DefaultQuery("window", "week")
	utils.Success(c, h.Catalog.Trending(kind, window))
}

// GetDiscover 按类型发现
func (h *Handler) GetDiscover(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	genreID, err := strconv.Atoi(c.Query("genre"))
	if err != nil {
		utils.BadRequest(c, "缺少 genre 参数")
		return
	}
	// 页码原样透传，越界与否由上游决定
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	utils.Success(c, h.Catalog.Discover(kind, genreID, page))
}

// GetGenres 类型列表
func (h *Handler) GetGenres(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	utils.Success(c, h.Catalog.Genres(kind))
}

// GetDetail 条目详情
func (h *Handler) GetDetail(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	utils.Success(c, h.Catalog.Detail(kind, id))
}

// GetCredits 演职员表
func (h *Handler) GetCredits(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	utils.Success(c, h.Catalog.Credits(kind, id))
}

// GetSimilar 相似条目
func (h *Handler) GetSimilar(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	utils.Success(c, h.Catalog.Similar(kind, id))
}

// GetItemRecommendations 单个条目的关联推荐
func (h *Handler) GetItemRecommendations(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	utils.Success(c, h.Catalog.Recommendations(kind, id))
}

// Search 跨类型搜索
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "缺少搜索关键词")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	utils.Success(c, h.Catalog.SearchMulti(query, page))
}

// GetUpcoming 即将上映
func (h *Handler) GetUpcoming(c *gin.Context) {
	utils.Success(c, h.Catalog.Upcoming())
}

// GetNowPlaying 正在上映
func (h *Handler) GetNowPlaying(c *gin.Context) {
	utils.Success(c, h.Catalog.NowPlaying())
}

// GetTopRated 高分榜
func (h *Handler) GetTopRated(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	utils.Success(c, h.Catalog.TopRated(kind))
}

// GetRecommendations 个性化推荐
func (h *Handler) GetRecommendations(c *gin.Context) {
	items, err := h.Recommend.ForUser(h.identity(c))
	if err != nil {
		h.trackingError(c, err)
		return
	}
	utils.Success(c, items)
}
