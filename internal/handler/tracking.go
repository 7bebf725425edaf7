package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/user/screenlog/internal/model"
	"github.com/user/screenlog/internal/service"
	"github.com/user/screenlog/internal/utils"
)

// 片单/评分接口。持久化失败向调用方返回 500 与后端消息，由前端提示
// 并回滚本地状态；目录接口的降级策略不适用于这里。

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=plan_to_watch watching completed on_hold dropped"`
}

type episodeUpdateRequest struct {
	CurrentEpisode int `json:"current_episode" binding:"min=0"`
}

type ratingRequest struct {
	service.CatalogSnapshot
	Rating int    `json:"rating" binding:"required,min=1,max=10"`
	Review string `json:"review"`
}

// trackingError 追踪操作的错误归类
func (h *Handler) trackingError(c *gin.Context, err error) {
	var pe *service.PersistenceError
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		utils.Unauthorized(c, "")
	case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrUnknownKind):
		utils.BadRequest(c, err.Error())
	case errors.As(err, &pe):
		utils.InternalServerError(c, pe.Error())
	default:
		utils.InternalServerError(c, "")
	}
}

// GetWatchlist 获取片单
func (h *Handler) GetWatchlist(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}

	id := h.identity(c)
	switch kind {
	case model.KindMovie:
		entries, err := h.Tracker.MovieWatchlist(id)
		if err != nil {
			h.trackingError(c, err)
			return
		}
		utils.Success(c, entries)
	case model.KindTV:
		entries, err := h.Tracker.TVWatchlist(id)
		if err != nil {
			h.trackingError(c, err)
			return
		}
		utils.Success(c, entries)
	}
}

// AddToWatchlist 加入片单，请求体携带目录快照字段
func (h *Handler) AddToWatchlist(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}

	var item service.CatalogSnapshot
	if err := c.ShouldBindJSON(&item); err != nil || item.ID <= 0 {
		utils.BadRequest(c, "条目数据不完整")
		return
	}

	if err := h.Tracker.AddToWatchlist(h.identity(c), kind, item); err != nil {
		h.trackingError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "已加入片单", nil)
}

// UpdateWatchlistStatus 切换观看状态
// 状态取值在这里用 oneof 拦住，存储层本身不做枚举校验
func (h *Handler) UpdateWatchlistStatus(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "状态取值不合法")
		return
	}

	if err := h.Tracker.UpdateWatchlistStatus(h.identity(c), kind, itemID, req.Status); err != nil {
		h.trackingError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "状态已更新", nil)
}

// UpdateEpisodeProgress 更新剧集追看进度
// 进度字段只对剧集有意义，电影路径直接拒绝，避免误写剧集表
func (h *Handler) UpdateEpisodeProgress(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	if kind != model.KindTV {
		utils.BadRequest(c, "追看进度仅适用于剧集")
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var req episodeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "集数不合法")
		return
	}

	if err := h.Tracker.UpdateEpisodeProgress(h.identity(c), itemID, req.CurrentEpisode); err != nil {
		h.trackingError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "进度已更新", nil)
}

// RemoveFromWatchlist 移出片单
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	if err := h.Tracker.RemoveFromWatchlist(h.identity(c), kind, itemID); err != nil {
		h.trackingError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "已移出片单", nil)
}

// GetRatings 获取评分列表
func (h *Handler) GetRatings(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}

	id := h.identity(c)
	switch kind {
	case model.KindMovie:
		entries, err := h.Tracker.MovieRatings(id)
		if err != nil {
			h.trackingError(c, err)
			return
		}
		utils.Success(c, entries)
	case model.KindTV:
		entries, err := h.Tracker.TVRatings(id)
		if err != nil {
			h.trackingError(c, err)
			return
		}
		utils.Success(c, entries)
	}
}

// RateItem 评分（重复评分覆盖）
func (h *Handler) RateItem(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID <= 0 {
		utils.BadRequest(c, "评分数据不完整，评分范围为 1-10")
		return
	}

	identity := h.identity(c)
	if err := h.Tracker.RateItem(identity, kind, req.CatalogSnapshot, req.Rating, req.Review); err != nil {
		h.trackingError(c, err)
		return
	}

	// 评分影响个性化推荐，使其缓存失效
	h.Recommend.Invalidate(identity.UserID)
	utils.SuccessWithMessage(c, "评分已提交", nil)
}

// RemoveRating 删除评分
func (h *Handler) RemoveRating(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	identity := h.identity(c)
	if err := h.Tracker.RemoveRating(identity, kind, itemID); err != nil {
		h.trackingError(c, err)
		return
	}

	h.Recommend.Invalidate(identity.UserID)
	utils.SuccessWithMessage(c, "评分已删除", nil)
}
