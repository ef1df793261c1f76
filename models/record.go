package models

import "time"

// 记录存储的文档键
const (
	RecordKeyIncomes          = "incomes"          // 收入账本（JSON 数组）
	RecordKeyReminderSettings = "reminderSettings" // 提醒设置（JSON 对象）
	RecordKeyMonthlyGoal      = "monthlyGoal"      // 月度目标（JSON 数字，可能不存在）
)

// Record 键值文档。所有业务状态以整份 JSON 文档为单位读写，
// 每次变更走 读取-改副本-整体回写，不做增量更新。
type Record struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Value     string    `json:"value" gorm:"type:longtext;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Record) TableName() string {
	return "records"
}
