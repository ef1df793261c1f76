package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewIncome(t *testing.T) {
	date := time.Date(2026, 8, 25, 0, 0, 0, 0, time.Local)
	income := NewIncome(decimal.NewFromInt(1000), "工资", date)

	assert.Equal(t, StatusPending, income.Status)
	assert.Equal(t, "工资", income.Description)
	assert.Equal(t, date, income.Date)
	// ID 为创建时刻的毫秒时间戳
	assert.InDelta(t, time.Now().UnixMilli(), income.ID, 1000)
}

func TestNewIncomeDefaultDescription(t *testing.T) {
	income := NewIncome(decimal.NewFromInt(1), "", time.Now())
	assert.Equal(t, DefaultDescription, income.Description)
}

func TestTithe(t *testing.T) {
	income := Income{Amount: decimal.RequireFromString("123.45")}
	assert.True(t, income.Tithe().Equal(decimal.RequireFromString("12.345")))
	assert.Equal(t, "12.35", income.Tithe().StringFixed(2))
}
