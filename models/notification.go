package models

import "time"

// Notification 已排期的通知。这是调度器自己的队列，不属于账本：
// 账本侧没有 收入→通知 的句柄映射，失效时只能整体清空重排。
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	Body      string    `json:"body" gorm:"size:500;not null"`
	FireAt    time.Time `json:"fire_at" gorm:"index;not null"`
	Sound     bool      `json:"sound"`
	Sent      bool      `json:"sent" gorm:"index;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (Notification) TableName() string {
	return "notifications"
}
