package service

import (
	"sort"
	"time"

	"tithe/models"

	"github.com/shopspring/decimal"
)

// TopSourceLimit 收入来源榜单长度上限
const TopSourceLimit = 5

// Summary 账本汇总
type Summary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalTithe    decimal.Decimal `json:"totalTithe"`
	PaidTithes    int             `json:"paidTithes"`
	PendingTithes int             `json:"pendingTithes"`
}

// SourceTotal 按描述分组的收入来源小计
type SourceTotal struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthTotal 按月份分组的收入小计
type MonthTotal struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Summarize 计算账本汇总，每次全量重算
func Summarize(incomes []models.Income) Summary {
	s := Summary{TotalIncome: decimal.Zero, TotalTithe: decimal.Zero}
	for _, income := range incomes {
		s.TotalIncome = s.TotalIncome.Add(income.Amount)
		switch income.Status {
		case models.StatusDone:
			s.PaidTithes++
		case models.StatusPending:
			s.PendingTithes++
		}
	}
	s.TotalTithe = s.TotalIncome.Mul(models.TitheRate)
	return s
}

// TopSources 按描述分组求和，保持首次出现顺序，最多返回前 5 个
func TopSources(incomes []models.Income) []SourceTotal {
	index := make(map[string]int)
	var sources []SourceTotal
	for _, income := range incomes {
		name := income.Description
		if name == "" {
			name = models.DefaultDescription
		}
		if i, ok := index[name]; ok {
			sources[i].Amount = sources[i].Amount.Add(income.Amount)
			continue
		}
		index[name] = len(sources)
		sources = append(sources, SourceTotal{Name: name, Amount: income.Amount})
	}
	if len(sources) > TopSourceLimit {
		sources = sources[:TopSourceLimit]
	}
	return sources
}

// MonthlyTotals 按 YYYY-MM 分组求和，保持首次出现顺序
func MonthlyTotals(incomes []models.Income) []MonthTotal {
	index := make(map[string]int)
	var months []MonthTotal
	for _, income := range incomes {
		key := income.Date.Format("2006-01")
		if i, ok := index[key]; ok {
			months[i].Amount = months[i].Amount.Add(income.Amount)
			continue
		}
		index[key] = len(months)
		months = append(months, MonthTotal{Month: key, Amount: income.Amount})
	}
	return months
}

// MonthSum 当前自然月（本地时区）的收入合计
func MonthSum(incomes []models.Income, now time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, income := range incomes {
		if income.Date.Year() == now.Year() && income.Date.Month() == now.Month() {
			sum = sum.Add(income.Amount)
		}
	}
	return sum
}

// GoalProgress 月度目标完成度百分比，封顶 100
func GoalProgress(monthSum, goal decimal.Decimal) decimal.Decimal {
	if !goal.IsPositive() {
		return decimal.Zero
	}
	progress := monthSum.Div(goal).Mul(decimal.NewFromInt(100))
	if progress.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return progress
}

// FilterFutureIncomes 筛选今天及以后的收入（按本地零点对齐），按日期升序
func FilterFutureIncomes(incomes []models.Income, now time.Time) []models.Income {
	today := midnight(now)
	future := make([]models.Income, 0)
	for _, income := range incomes {
		if !midnight(income.Date).Before(today) {
			future = append(future, income)
		}
	}
	sort.Slice(future, func(i, j int) bool {
		return future[i].Date.Before(future[j].Date)
	})
	return future
}
