package models

import (
	"fmt"
	"time"
)

// ValidDaysBefore 提前提醒天数的可选值
var ValidDaysBefore = []int{1, 2, 3, 5, 7}

// ReminderSettings 提醒设置（单例文档，整体读写）
type ReminderSettings struct {
	PushEnabled  bool   `json:"pushEnabled"`  // 总开关，关闭时不派生任何提醒
	Recurring    bool   `json:"recurring"`    // 是否为待提交什一批量排期提醒
	DaysBefore   int    `json:"daysBefore"`   // 提前几天提醒
	Time         string `json:"time"`         // 每日提醒时刻，HH:MM（24小时制）
	SoundEnabled bool   `json:"soundEnabled"` // 通知是否带声音
}

// DefaultReminderSettings 首次读取时写入的默认设置
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		PushEnabled:  false,
		Recurring:    true,
		DaysBefore:   3,
		Time:         "09:00",
		SoundEnabled: true,
	}
}

// Validate 校验设置合法性
func (s ReminderSettings) Validate() error {
	ok := false
	for _, d := range ValidDaysBefore {
		if s.DaysBefore == d {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("daysBefore 必须为 1、2、3、5、7 之一")
	}
	if _, _, err := s.Clock(); err != nil {
		return err
	}
	return nil
}

// Clock 解析 Time 字段，返回时、分
func (s ReminderSettings) Clock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", s.Time)
	if err != nil {
		return 0, 0, fmt.Errorf("time 格式错误，应为 HH:MM（24小时制）")
	}
	return t.Hour(), t.Minute(), nil
}
