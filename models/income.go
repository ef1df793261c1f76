package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 收入记录状态
const (
	StatusPending = "pending" // 什一奉献待提交
	StatusDone    = "done"    // 已提交
)

// DefaultDescription 未填写描述时的占位文本
const DefaultDescription = "No description"

// TitheRate 什一奉献比例，固定 10%
var TitheRate = decimal.New(1, -1)

// Income 收入记录。整个账本以 JSON 文档形式存放在 records 表的
// incomes 键下，而不是逐行入库，与客户端的本地存储格式保持一致。
type Income struct {
	ID          int64           `json:"id"` // 创建时刻的毫秒时间戳，天然单调递增
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
}

// Tithe 应缴什一金额（amount * 0.10），始终派生，从不落库
func (i Income) Tithe() decimal.Decimal {
	return i.Amount.Mul(TitheRate)
}

// NewIncome 创建一条待提交的收入记录
func NewIncome(amount decimal.Decimal, description string, date time.Time) Income {
	if description == "" {
		description = DefaultDescription
	}
	return Income{
		ID:          time.Now().UnixMilli(),
		Amount:      amount,
		Description: description,
		Date:        date,
		Status:      StatusPending,
	}
}
