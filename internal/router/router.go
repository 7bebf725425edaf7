package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/screenlog/internal/handler"
	"github.com/user/screenlog/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 认证 ====================
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	// ==================== 目录查询（公开）====================
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		api.GET("/landing", h.GetLanding)
		api.GET("/trending/:kind", h.GetTrending)
		api.GET("/discover/:kind", h.GetDiscover)
		api.GET("/genres/:kind", h.GetGenres)
		api.GET("/detail/:kind/:id", h.GetDetail)
		api.GET("/detail/:kind/:id/credits", h.GetCredits)
		api.GET("/detail/:kind/:id/similar", h.GetSimilar)
		api.GET("/detail/:kind/:id/recommendations", h.GetItemRecommendations)
		api.GET("/search", h.Search)
		api.GET("/upcoming", h.GetUpcoming)
		api.GET("/now_playing", h.GetNowPlaying)
		api.GET("/top_rated/:kind", h.GetTopRated)
	}

	// ==================== 用户数据（需要登录）====================
	user := r.Group("/api")
	user.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		user.GET("/me", h.Me)
		user.GET("/recommendations", h.GetRecommendations)

		user.GET("/watchlist/:kind", h.GetWatchlist)
		user.POST("/watchlist/:kind", h.AddToWatchlist)
		user.PATCH("/watchlist/:kind/:id", h.UpdateWatchlistStatus)
		user.PATCH("/watchlist/:kind/:id/episode", h.UpdateEpisodeProgress)
		user.DELETE("/watchlist/:kind/:id", h.RemoveFromWatchlist)

		user.GET("/ratings/:kind", h.GetRatings)
		user.POST("/ratings/:kind", h.RateItem)
		user.DELETE("/ratings/:kind/:id", h.RemoveRating)
	}
}
