package api

import (
	"time"

	"tithe/config"
	"tithe/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 认证处理器。单用户系统，账号信息来自配置文件
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"owner"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login 用户登录
// @Summary 用户登录
// @Description 使用配置中的账号登录获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if h.cfg.Auth.PasswordHash == "" {
		Unauthorized(c, "未配置登录密码，请先设置 auth.password_hash")
		return
	}

	if req.Username != h.cfg.Auth.Username {
		Unauthorized(c, "用户名或密码错误")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.Auth.PasswordHash), []byte(req.Password)); err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	ttl := time.Duration(h.cfg.JWT.ExpireHours) * time.Hour
	token, err := middleware.GenerateToken(h.cfg.Auth.Username, ttl)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 token 失败"))
		return
	}

	SuccessWithMessage(c, "登录成功", LoginResponse{
		Token:    token,
		Username: h.cfg.Auth.Username,
	})
}
