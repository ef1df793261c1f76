package api

import (
	"tithe/config"
	"tithe/service"

	"github.com/gin-gonic/gin"
)

// EmailHandler 邮件配置处理器
type EmailHandler struct {
	cfg   *config.Config
	email *service.EmailService
}

// NewEmailHandler 创建邮件配置处理器
func NewEmailHandler(cfg *config.Config) *EmailHandler {
	return &EmailHandler{
		cfg:   cfg,
		email: service.NewEmailService(&cfg.Email),
	}
}

// SendTest 发送测试邮件，验证邮件通道配置
// @Summary 发送测试邮件
// @Description 向指定邮箱（默认配置的收件邮箱）发送一封测试邮件
// @Tags 邮件
// @Produce json
// @Security BearerAuth
// @Param to query string false "收件邮箱，留空使用 email.to"
// @Success 200 {object} Response
// @Failure 400 {object} Response "邮件服务未启用或未配置收件邮箱"
// @Router /api/v1/email/test [post]
func (h *EmailHandler) SendTest(c *gin.Context) {
	if !h.email.Enabled() {
		BadRequest(c, "邮件服务未启用，请配置 EMAIL_ENABLED=true")
		return
	}

	to := c.DefaultQuery("to", h.cfg.Email.To)
	if to == "" {
		BadRequest(c, "未配置收件邮箱，请提供 to 参数或配置 email.to")
		return
	}

	if err := h.email.SendTestEmail(to); err != nil {
		InternalError(c, SafeErrorMessage(err, "测试邮件发送失败"))
		return
	}

	SuccessWithMessage(c, "测试邮件已发送", nil)
}
