// Package store 封装键值文档存储。
//
// 所有业务状态（账本、提醒设置、月度目标）各占 records 表里的一个键，
// 值为整份 JSON 文档。读写语义是整体替换：调用方 读取→改副本→回写，
// 内存里的副本只是快照，库里的文档才是唯一事实。单用户、单写者，
// 不加锁也不做增量维护；并发丢更新是已知限制，见 DESIGN.md。
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tithe/database"
	"tithe/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Get 按键读取原始文档，found 表示键是否存在
func Get(key string) (value string, found bool, err error) {
	var rec models.Record
	if err := database.DB.First(&rec, "`key` = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("读取文档 %s 失败: %w", key, err)
	}
	return rec.Value, true, nil
}

// Set 整体写入文档（存在则覆盖）
func Set(key, value string) error {
	rec := models.Record{Key: key, Value: value}
	if err := database.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("写入文档 %s 失败: %w", key, err)
	}
	return nil
}

// Remove 删除文档，键不存在时不报错
func Remove(key string) error {
	if err := database.DB.Where("`key` = ?", key).Delete(&models.Record{}).Error; err != nil {
		return fmt.Errorf("删除文档 %s 失败: %w", key, err)
	}
	return nil
}

// LoadIncomes 读取收入账本，文档不存在时返回空账本
func LoadIncomes() ([]models.Income, error) {
	raw, found, err := Get(models.RecordKeyIncomes)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Income{}, nil
	}
	var incomes []models.Income
	if err := json.Unmarshal([]byte(raw), &incomes); err != nil {
		return nil, fmt.Errorf("解析收入账本失败: %w", err)
	}
	return incomes, nil
}

// SaveIncomes 整体回写收入账本
func SaveIncomes(incomes []models.Income) error {
	raw, err := json.Marshal(incomes)
	if err != nil {
		return fmt.Errorf("序列化收入账本失败: %w", err)
	}
	return Set(models.RecordKeyIncomes, string(raw))
}

// LoadSettings 读取提醒设置，首次读取时写入默认值
func LoadSettings() (models.ReminderSettings, error) {
	raw, found, err := Get(models.RecordKeyReminderSettings)
	if err != nil {
		return models.ReminderSettings{}, err
	}
	if !found {
		defaults := models.DefaultReminderSettings()
		if err := SaveSettings(defaults); err != nil {
			return models.ReminderSettings{}, err
		}
		return defaults, nil
	}
	var settings models.ReminderSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.ReminderSettings{}, fmt.Errorf("解析提醒设置失败: %w", err)
	}
	return settings, nil
}

// SaveSettings 整体回写提醒设置
func SaveSettings(settings models.ReminderSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("序列化提醒设置失败: %w", err)
	}
	return Set(models.RecordKeyReminderSettings, string(raw))
}

// LoadGoal 读取月度目标，found 为 false 表示未设置
func LoadGoal() (decimal.Decimal, bool, error) {
	raw, found, err := Get(models.RecordKeyMonthlyGoal)
	if err != nil || !found {
		return decimal.Zero, false, err
	}
	goal, err := decimal.NewFromString(strings.Trim(strings.TrimSpace(raw), `"`))
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("解析月度目标失败: %w", err)
	}
	return goal, true, nil
}

// SaveGoal 写入月度目标
func SaveGoal(goal decimal.Decimal) error {
	return Set(models.RecordKeyMonthlyGoal, goal.String())
}

// RemoveGoal 清除月度目标
func RemoveGoal() error {
	return Remove(models.RecordKeyMonthlyGoal)
}
