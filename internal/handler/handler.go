package handler

import (
	"log"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/screenlog/internal/config"
	"github.com/user/screenlog/internal/middleware"
	"github.com/user/screenlog/internal/model"
	"github.com/user/screenlog/internal/repository"
	"github.com/user/screenlog/internal/service"
	"github.com/user/screenlog/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos     *repository.Repositories
	Config    *config.Config
	Catalog   *service.TMDBService
	Tracker   *service.Tracker
	Landing   *service.LandingService
	Recommend *service.RecommendService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	catalog := service.NewTMDBService(cfg)

	return &Handler{
		Repos:     repos,
		Config:    cfg,
		Catalog:   catalog,
		Tracker:   service.NewTracker(repos.Tracking),
		Landing:   service.NewLandingService(catalog),
		Recommend: service.NewRecommendService(repos.Rating, catalog),
	}
}

// identity 从请求上下文构造已认证身份（未登录时为零值）
func (h *Handler) identity(c *gin.Context) service.Identity {
	return service.Identity{
		UserID: middleware.GetUserID(c),
		Email:  middleware.GetEmail(c),
	}
}

// ==================== 认证 ====================

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册处理
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "邮箱或密码格式不正确")
		return
	}

	// 检查邮箱是否已存在
	existing, _ := h.Repos.User.FindByEmail(req.Email)
	if existing != nil {
		utils.BadRequest(c, "该邮箱已被注册")
		return
	}

	// 默认截取邮箱 @ 符号前的内容作为用户名
	username := req.Email
	if parts := strings.Split(req.Email, "@"); len(parts) > 0 {
		username = parts[0]
	}

	user, err := h.Repos.User.Create(req.Email, username, req.Password)
	if err != nil {
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}

	h.establishSession(c, user)
	utils.SuccessWithMessage(c, "注册成功", user)
}

// Login 登录处理
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "邮箱或密码格式不正确")
		return
	}

	// 查找用户
	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil || user == nil {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 验证密码
	if !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	h.establishSession(c, user)
	utils.SuccessWithMessage(c, "登录成功", user)
}

// Logout 退出登录，清掉 JWT Cookie 与 Session
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	utils.SuccessWithMessage(c, "已退出登录", nil)
}

// Me 当前用户信息与追踪统计
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, err := h.Repos.User.FindByID(userID)
	if err != nil || user == nil {
		utils.Unauthorized(c, "")
		return
	}

	// 统计失败不拦截个人信息本身，但要留下日志
	watchlistCount, err := h.Repos.Watchlist.CountByUser(userID)
	if err != nil {
		log.Printf("[Me] 统计片单数量失败: %v", err)
	}
	ratingCount, err := h.Repos.Rating.CountByUser(userID)
	if err != nil {
		log.Printf("[Me] 统计评分数量失败: %v", err)
	}

	utils.Success(c, gin.H{
		"user":            user,
		"watchlist_count": watchlistCount,
		"rating_count":    ratingCount,
	})
}

// establishSession 登录成功后发放 JWT 并写入 Session
func (h *Handler) establishSession(c *gin.Context, user *model.User) {
	token, err := middleware.GenerateToken(user.ID, user.Email, h.Config.AppSecret, h.Config.JWTExpiry)
	if err == nil {
		c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
		c.Header("X-Auth-Token", token)
	}

	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	session.Save()
}
