package service

import (
	"fmt"
	"time"

	"tithe/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 邮件通道是否可用
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendNotificationEmail 把一条通知投递到配置的收件邮箱
func (s *EmailService) SendNotificationEmail(title, body string, fireAt time.Time) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用，请配置 EMAIL_ENABLED=true")
	}

	subject := fmt.Sprintf("【十一奉献】%s", title)
	return s.sendEmail(s.cfg.To, subject, s.generateNotificationEmailBody(title, body, fireAt))
}

// generateNotificationEmailBody 生成通知邮件内容
func (s *EmailService) generateNotificationEmailBody(title, body string, fireAt time.Time) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #10b981, #059669); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .notice-box { background: linear-gradient(135deg, #f0fdf4, #dcfce7); border: 2px dashed #10b981; border-radius: 12px; padding: 30px; text-align: center; margin: 30px 0; }
        .notice { font-size: 18px; color: #059669; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🙏 十一奉献记账</h1>
        </div>
        <div class="content">
            <p><strong>%s</strong></p>
            <div class="notice-box">
                <span class="notice">%s</span>
            </div>
            <p>提醒时间：%s</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 十一奉献记账 - 您的奉献管理助手</p>
        </div>
    </div>
</body>
</html>
`, title, body, fireAt.Format("2006-01-02 15:04"))
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【十一奉献】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— 十一奉献记账</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
