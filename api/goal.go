package api

import (
	"fmt"
	"time"

	"tithe/service"
	"tithe/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GoalHandler 月度目标处理器
type GoalHandler struct {
	notifier *service.Notifier
}

// NewGoalHandler 创建月度目标处理器
func NewGoalHandler(notifier *service.Notifier) *GoalHandler {
	return &GoalHandler{notifier: notifier}
}

// SaveGoalRequest 设置目标请求
type SaveGoalRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"5000"`
}

// GoalView 目标与进度视图
type GoalView struct {
	Goal               *decimal.Decimal `json:"goal"` // null 表示未设置
	CurrentMonthIncome decimal.Decimal  `json:"currentMonthIncome"`
	Progress           *decimal.Decimal `json:"progress"` // 百分比，封顶 100，未设置目标时为 null
}

func (h *GoalHandler) view() (GoalView, error) {
	incomes, err := store.LoadIncomes()
	if err != nil {
		return GoalView{}, err
	}
	monthSum := service.MonthSum(incomes, time.Now())

	view := GoalView{CurrentMonthIncome: monthSum}
	goal, found, err := store.LoadGoal()
	if err != nil {
		return GoalView{}, err
	}
	if found {
		progress := service.GoalProgress(monthSum, goal)
		view.Goal = &goal
		view.Progress = &progress
	}
	return view, nil
}

// Get 查询月度目标和完成进度
// @Summary 查询月度目标
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=GoalView}
// @Router /api/v1/goal [get]
func (h *GoalHandler) Get(c *gin.Context) {
	view, err := h.view()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取目标失败"))
		return
	}
	Success(c, view)
}

// Save 设置月度目标
// @Summary 设置月度目标
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveGoalRequest true "目标金额"
// @Success 200 {object} Response{data=GoalView}
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/goal [put]
func (h *GoalHandler) Save(c *gin.Context) {
	var req SaveGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "目标金额必须是正数")
		return
	}

	goal := decimal.NewFromFloat(req.Amount)
	if err := store.SaveGoal(goal); err != nil {
		InternalError(c, SafeErrorMessage(err, "保存目标失败"))
		return
	}

	h.notifier.ShowNow("Goal Updated",
		fmt.Sprintf("Monthly goal set to %s %s", service.Currency, goal.StringFixed(2)))

	view, err := h.view()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取目标失败"))
		return
	}
	SuccessWithMessage(c, "目标已保存", view)
}

// Clear 清除月度目标
// @Summary 清除月度目标
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /api/v1/goal [delete]
func (h *GoalHandler) Clear(c *gin.Context) {
	if err := store.RemoveGoal(); err != nil {
		InternalError(c, SafeErrorMessage(err, "清除目标失败"))
		return
	}

	h.notifier.ShowNow("Goal Cleared", "Monthly goal has been removed")
	SuccessWithMessage(c, "目标已清除", nil)
}
