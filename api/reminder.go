package api

import (
	"time"

	"tithe/models"
	"tithe/service"
	"tithe/store"

	"github.com/gin-gonic/gin"
)

// ReminderHandler 提醒设置处理器
type ReminderHandler struct {
	notifier *service.Notifier
}

// NewReminderHandler 创建提醒设置处理器
func NewReminderHandler(notifier *service.Notifier) *ReminderHandler {
	return &ReminderHandler{notifier: notifier}
}

// GetSettings 查询提醒设置
// @Summary 查询提醒设置
// @Description 首次查询会写入并返回默认设置
// @Tags 提醒
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.ReminderSettings}
// @Router /api/v1/reminders/settings [get]
func (h *ReminderHandler) GetSettings(c *gin.Context) {
	settings, err := store.LoadSettings()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取提醒设置失败"))
		return
	}
	Success(c, settings)
}

// SaveSettings 保存提醒设置
// @Summary 保存提醒设置
// @Description 整体覆盖保存，保存后清空并重排全部通知
// @Tags 提醒
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ReminderSettings true "提醒设置"
// @Success 200 {object} Response{data=models.ReminderSettings}
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/reminders/settings [put]
func (h *ReminderHandler) SaveSettings(c *gin.Context) {
	var settings models.ReminderSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if err := settings.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := store.SaveSettings(settings); err != nil {
		InternalError(c, SafeErrorMessage(err, "保存提醒设置失败"))
		return
	}

	h.notifier.ShowNow("Settings Updated", "Reminder settings have been saved successfully")
	h.notifier.Resync()

	SuccessWithMessage(c, "设置已保存", settings)
}

// Upcoming 预览当前账本会派生出的全部提醒
// @Summary 提醒预览
// @Tags 提醒
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.DesiredNotification}
// @Router /api/v1/reminders/upcoming [get]
func (h *ReminderHandler) Upcoming(c *gin.Context) {
	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}
	settings, err := store.LoadSettings()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取提醒设置失败"))
		return
	}

	desired := service.DesiredNotifications(incomes, settings, time.Now())
	if desired == nil {
		desired = []service.DesiredNotification{}
	}
	Success(c, desired)
}
