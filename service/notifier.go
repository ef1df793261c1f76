package service

import (
	"log"
	"time"

	"tithe/database"
	"tithe/models"
	"tithe/store"

	"github.com/robfig/cron/v3"
)

// Notifier 通知调度器。排期存放在 notifications 队列表里，
// 由分钟级 cron 扫描到期行并投递。账本变更后不做增量修补，
// 统一走 Resync 清空重排。通知失败只记日志，绝不影响触发它的业务操作。
type Notifier struct {
	email *EmailService
	cron  *cron.Cron
}

// NewNotifier 创建通知调度器
func NewNotifier(email *EmailService) *Notifier {
	return &Notifier{email: email}
}

// Start 启动投递循环，每分钟扫描一次到期通知
func (n *Notifier) Start() {
	if n.cron != nil {
		return
	}
	n.cron = cron.New()
	if _, err := n.cron.AddFunc("* * * * *", n.dispatchDue); err != nil {
		log.Printf("注册通知投递任务失败: %v", err)
		return
	}
	n.cron.Start()
	log.Println("通知投递任务已启动")
}

// Stop 停止投递循环
func (n *Notifier) Stop() {
	if n.cron != nil {
		n.cron.Stop()
	}
}

// ShowNow 立即弹出一条操作确认通知。不受 pushEnabled 限制，
// soundEnabled 只决定是否带声音。失败只记日志。
func (n *Notifier) ShowNow(title, body string) {
	sound := true
	if settings, err := store.LoadSettings(); err == nil {
		sound = settings.SoundEnabled
	}
	n.deliver(models.Notification{
		Title:  title,
		Body:   body,
		FireAt: time.Now(),
		Sound:  sound,
	})
}

// ScheduleAt 把一条通知写入排期队列
func (n *Notifier) ScheduleAt(title, body string, fireAt time.Time, sound bool) error {
	return database.DB.Create(&models.Notification{
		Title:  title,
		Body:   body,
		FireAt: fireAt,
		Sound:  sound,
	}).Error
}

// CancelAll 清空所有未投递的排期
func (n *Notifier) CancelAll() error {
	return database.DB.Where("sent = ?", false).Delete(&models.Notification{}).Error
}

// Resync 全量重排：清空旧排期，按当前账本和设置重新派生。
// 任一步失败都只记日志，调用方的业务操作照常完成。
func (n *Notifier) Resync() {
	if err := n.CancelAll(); err != nil {
		log.Printf("清空通知排期失败: %v", err)
		return
	}

	incomes, err := store.LoadIncomes()
	if err != nil {
		log.Printf("重排通知时读取账本失败: %v", err)
		return
	}
	settings, err := store.LoadSettings()
	if err != nil {
		log.Printf("重排通知时读取设置失败: %v", err)
		return
	}

	desired := DesiredNotifications(incomes, settings, time.Now())
	for _, d := range desired {
		if err := n.ScheduleAt(d.Title, d.Body, d.FireAt, settings.SoundEnabled); err != nil {
			log.Printf("写入通知排期失败: %v", err)
		}
	}
	log.Printf("通知排期已重建，共 %d 条", len(desired))
}

// dispatchDue 投递所有到期的未发送通知并标记已发送
func (n *Notifier) dispatchDue() {
	var due []models.Notification
	if err := database.DB.Where("sent = ? AND fire_at <= ?", false, time.Now()).Find(&due).Error; err != nil {
		log.Printf("查询到期通知失败: %v", err)
		return
	}

	for _, notif := range due {
		n.deliver(notif)
		if err := database.DB.Model(&models.Notification{}).Where("id = ?", notif.ID).Update("sent", true).Error; err != nil {
			log.Printf("标记通知已发送失败: %v", err)
		}
	}
}

// deliver 通过邮件通道投递，未启用邮件时降级为日志输出
func (n *Notifier) deliver(notif models.Notification) {
	if n.email != nil && n.email.Enabled() {
		if err := n.email.SendNotificationEmail(notif.Title, notif.Body, notif.FireAt); err != nil {
			log.Printf("通知邮件发送失败: %v", err)
		}
		return
	}
	log.Printf("[通知] %s: %s (sound=%v)", notif.Title, notif.Body, notif.Sound)
}
