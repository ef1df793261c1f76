package api

import (
	"tithe/service"
	"tithe/store"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 统计分析处理器
type AnalyticsHandler struct{}

// NewAnalyticsHandler 创建统计分析处理器
func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

// AnalyticsView 统计分析视图
type AnalyticsView struct {
	service.Summary
	IncomeSources []service.SourceTotal `json:"incomeSources"`
	MonthlyData   []service.MonthTotal  `json:"monthlyData"`
}

// Get 统计分析
// @Summary 统计分析
// @Description 收入与什一总额、已缴/待缴笔数、收入来源前五、逐月合计
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=AnalyticsView}
// @Router /api/v1/analytics [get]
func (h *AnalyticsHandler) Get(c *gin.Context) {
	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}

	view := AnalyticsView{
		Summary:       service.Summarize(incomes),
		IncomeSources: service.TopSources(incomes),
		MonthlyData:   service.MonthlyTotals(incomes),
	}
	if view.IncomeSources == nil {
		view.IncomeSources = []service.SourceTotal{}
	}
	if view.MonthlyData == nil {
		view.MonthlyData = []service.MonthTotal{}
	}
	Success(c, view)
}
