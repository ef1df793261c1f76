package service

import (
	"fmt"
	"time"

	"tithe/models"
)

// Currency 金额展示货币
const Currency = "ETB"

// 通知标题
const (
	TitleTitheReminder        = "Tithe Reminder"
	TitleDailyTitheCheck      = "Daily Tithe Check"
	TitleFutureIncomeReminder = "Future Income Reminder"
)

// BodyDailyTitheCheck 每日检查通知正文
const BodyDailyTitheCheck = "Check your tithe status and add any new income received today"

// DesiredNotification 策略引擎派生出的一条期望通知
type DesiredNotification struct {
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fireAt"`
}

// DesiredNotifications 根据当前账本和设置派生全部期望通知。
// 纯函数，不读写任何存储；每次排期都整体重算，调用方先清空旧排期。
//
// 规则：
//   - pushEnabled 关闭时返回空集，recurring 不起作用
//   - 待提交什一提醒和未来收入提醒额外要求 recurring
//   - 单条提醒触发于 记录日期 - daysBefore 天的 settings.time 时刻，
//     只保留严格晚于 now 的
//   - 每日检查固定排在明天的 settings.time，只看 pushEnabled
//
// 同一条未来收入可能同时命中什一提醒和未来收入提醒，不去重。
func DesiredNotifications(incomes []models.Income, settings models.ReminderSettings, now time.Time) []DesiredNotification {
	if !settings.PushEnabled {
		return nil
	}

	hour, minute, err := settings.Clock()
	if err != nil {
		hour, minute = 9, 0
	}

	var desired []DesiredNotification

	if settings.Recurring {
		for _, income := range incomes {
			if income.Status != models.StatusPending {
				continue
			}
			fireAt := reminderFireAt(income.Date, settings.DaysBefore, hour, minute)
			if !fireAt.After(now) {
				continue
			}
			desired = append(desired, DesiredNotification{
				Title: TitleTitheReminder,
				Body: fmt.Sprintf("Don't forget to submit your tithe of %s %s for income received on %s",
					Currency, income.Tithe().StringFixed(2), income.Date.Format("2006-01-02")),
				FireAt: fireAt,
			})
		}
	}

	desired = append(desired, DesiredNotification{
		Title:  TitleDailyTitheCheck,
		Body:   BodyDailyTitheCheck,
		FireAt: atClock(now.AddDate(0, 0, 1), hour, minute),
	})

	if settings.Recurring {
		today := midnight(now)
		for _, income := range incomes {
			if !midnight(income.Date).After(today) {
				continue
			}
			fireAt := reminderFireAt(income.Date, settings.DaysBefore, hour, minute)
			if !fireAt.After(now) {
				continue
			}
			desired = append(desired, DesiredNotification{
				Title: TitleFutureIncomeReminder,
				Body: fmt.Sprintf("Don't forget to add your income of %s %s scheduled for today: %s",
					Currency, income.Amount.StringFixed(2), income.Description),
				FireAt: fireAt,
			})
		}
	}

	return desired
}

// FutureReminderDue 判断新增的未来收入是否会立刻排上一条提醒，
// 用于录入接口决定是否附带 Reminder Scheduled 确认
func FutureReminderDue(income models.Income, settings models.ReminderSettings, now time.Time) (time.Time, bool) {
	if !settings.PushEnabled || !settings.Recurring {
		return time.Time{}, false
	}
	if !midnight(income.Date).After(midnight(now)) {
		return time.Time{}, false
	}
	hour, minute, err := settings.Clock()
	if err != nil {
		hour, minute = 9, 0
	}
	fireAt := reminderFireAt(income.Date, settings.DaysBefore, hour, minute)
	if !fireAt.After(now) {
		return time.Time{}, false
	}
	return fireAt, true
}

// reminderFireAt 记录日期提前 daysBefore 天，时刻改写为设置的时、分
func reminderFireAt(date time.Time, daysBefore, hour, minute int) time.Time {
	return atClock(date.AddDate(0, 0, -daysBefore), hour, minute)
}

func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
