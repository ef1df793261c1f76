package api

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"tithe/models"
	"tithe/service"
	"tithe/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IncomeHandler 收入记录处理器
type IncomeHandler struct {
	notifier *service.Notifier
}

// NewIncomeHandler 创建收入记录处理器
func NewIncomeHandler(notifier *service.Notifier) *IncomeHandler {
	return &IncomeHandler{notifier: notifier}
}

// CreateIncomeRequest 录入收入请求
type CreateIncomeRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"1000"`
	Description string  `json:"description" example:"工资"`
	Date        string  `json:"date" example:"2026-08-25"` // 留空默认今天，可以是未来日期
}

// IncomeView 收入记录视图，附带派生的什一金额
type IncomeView struct {
	models.Income
	Tithe decimal.Decimal `json:"tithe"`
}

func toView(income models.Income) IncomeView {
	return IncomeView{Income: income, Tithe: income.Tithe()}
}

func toViews(incomes []models.Income) []IncomeView {
	views := make([]IncomeView, 0, len(incomes))
	for _, income := range incomes {
		views = append(views, toView(income))
	}
	return views
}

// Create 录入一笔收入
// @Summary 录入收入
// @Description 新增一条待提交什一的收入记录，日期可以是未来日期
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "收入信息"
// @Success 200 {object} Response{data=IncomeView} "录入成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为 YYYY-MM-DD")
			return
		}
		date = parsed
	}

	income := models.NewIncome(decimal.NewFromFloat(req.Amount), req.Description, date)

	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}
	incomes = append(incomes, income)
	if err := store.SaveIncomes(incomes); err != nil {
		InternalError(c, SafeErrorMessage(err, "保存账本失败"))
		return
	}

	h.notifier.ShowNow("Income Added",
		fmt.Sprintf("%s %s added for %s. Tithe: %s %s",
			service.Currency, income.Amount.StringFixed(2),
			income.Date.Format("2006-01-02"),
			service.Currency, income.Tithe().StringFixed(2)))

	if settings, err := store.LoadSettings(); err == nil {
		if _, due := service.FutureReminderDue(income, settings, time.Now()); due {
			h.notifier.ShowNow("Reminder Scheduled",
				fmt.Sprintf("Reminder set for %s income", income.Date.Format("2006-01-02")))
		}
	}

	h.notifier.Resync()
	SuccessWithMessage(c, "录入成功", toView(income))
}

// List 查询收入列表
// @Summary 收入列表
// @Description 按日期倒序返回收入记录，支持 status 过滤
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态过滤" Enums(all, pending, done)
// @Success 200 {object} Response{data=[]IncomeView}
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}

	status := c.Query("status")
	if status == "all" {
		// all 等价于不过滤
		status = ""
	}
	if status != "" && status != models.StatusPending && status != models.StatusDone {
		BadRequest(c, "status 只支持 all、pending 或 done")
		return
	}
	if status != "" {
		filtered := make([]models.Income, 0, len(incomes))
		for _, income := range incomes {
			if income.Status == status {
				filtered = append(filtered, income)
			}
		}
		incomes = filtered
	}

	// 最新的排前面
	sort.Slice(incomes, func(i, j int) bool {
		if incomes[i].Date.Equal(incomes[j].Date) {
			return incomes[i].ID > incomes[j].ID
		}
		return incomes[i].Date.After(incomes[j].Date)
	})

	Success(c, toViews(incomes))
}

// Future 查询未来收入视图
// @Summary 未来收入列表
// @Description 返回今天及以后的收入记录，按日期升序
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]IncomeView}
// @Router /api/v1/incomes/future [get]
func (h *IncomeHandler) Future(c *gin.Context) {
	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}
	Success(c, toViews(service.FilterFutureIncomes(incomes, time.Now())))
}

// MarkDone 把一条什一标记为已提交
// @Summary 标记什一已提交
// @Description 状态只能从 pending 变为 done，重复标记是幂等的
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} Response{data=IncomeView}
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id}/done [post]
func (h *IncomeHandler) MarkDone(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "无效的记录 ID")
		return
	}

	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}

	idx := -1
	for i := range incomes {
		if incomes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		NotFound(c, "记录不存在")
		return
	}

	if incomes[idx].Status == models.StatusDone {
		// 幂等：已提交的重复标记不落库也不弹通知
		Success(c, toView(incomes[idx]))
		return
	}

	incomes[idx].Status = models.StatusDone
	if err := store.SaveIncomes(incomes); err != nil {
		InternalError(c, SafeErrorMessage(err, "保存账本失败"))
		return
	}

	h.notifier.ShowNow("Tithe Marked as Done",
		fmt.Sprintf("%s %s tithe marked as completed",
			service.Currency, incomes[idx].Tithe().StringFixed(2)))
	h.notifier.Resync()

	Success(c, toView(incomes[idx]))
}

// Delete 删除一条收入记录
// @Summary 删除收入
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "无效的记录 ID")
		return
	}

	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}

	remaining := make([]models.Income, 0, len(incomes))
	for _, income := range incomes {
		if income.ID != id {
			remaining = append(remaining, income)
		}
	}
	if len(remaining) == len(incomes) {
		NotFound(c, "记录不存在")
		return
	}

	if err := store.SaveIncomes(remaining); err != nil {
		InternalError(c, SafeErrorMessage(err, "保存账本失败"))
		return
	}

	h.notifier.ShowNow("Income Deleted", "Income record has been removed")
	h.notifier.Resync()

	SuccessWithMessage(c, "删除成功", nil)
}

// ClearAll 清空全部收入记录
// @Summary 清空账本
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /api/v1/incomes [delete]
func (h *IncomeHandler) ClearAll(c *gin.Context) {
	if err := store.Remove(models.RecordKeyIncomes); err != nil {
		InternalError(c, SafeErrorMessage(err, "清空账本失败"))
		return
	}

	h.notifier.ShowNow("Data Cleared", "All income records have been removed")
	h.notifier.Resync()

	SuccessWithMessage(c, "已清空全部收入记录", nil)
}
