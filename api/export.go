package api

import (
	"fmt"
	"strings"
	"time"

	"tithe/models"
	"tithe/service"
	"tithe/store"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 数据导出处理器
type ExportHandler struct {
	notifier *service.Notifier
}

// NewExportHandler 创建数据导出处理器
func NewExportHandler(notifier *service.Notifier) *ExportHandler {
	return &ExportHandler{notifier: notifier}
}

// buildExportText 生成纯文本导出报告
func buildExportText(incomes []models.Income, now time.Time) string {
	summary := service.Summarize(incomes)

	var b strings.Builder
	b.WriteString("Tithe Tracker Data Export\n")
	b.WriteString("=========================\n\n")
	fmt.Fprintf(&b, "Total Records: %d\n", len(incomes))
	fmt.Fprintf(&b, "Total Income: %s %s\n", service.Currency, summary.TotalIncome.StringFixed(2))
	fmt.Fprintf(&b, "Total Tithe: %s %s\n", service.Currency, summary.TotalTithe.StringFixed(2))
	fmt.Fprintf(&b, "Tithes Paid: %d\n", summary.PaidTithes)
	fmt.Fprintf(&b, "Tithes Pending: %d\n\n", summary.PendingTithes)
	b.WriteString("Detailed Records:\n")
	for _, income := range incomes {
		description := income.Description
		if description == "" {
			description = models.DefaultDescription
		}
		fmt.Fprintf(&b, "- %s: %s %s (%s) - %s\n",
			income.Date.Format("2006-01-02"),
			service.Currency, income.Amount.StringFixed(2),
			income.Status, description)
	}
	fmt.Fprintf(&b, "\nExported on: %s", now.Format("2006-01-02 15:04:05"))
	return b.String()
}

// Text 导出纯文本报告
// @Summary 导出文本报告
// @Description 全量账本的纯文本汇总，与分享导出格式一致
// @Tags 导出
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string
// @Router /api/v1/export/text [get]
func (h *ExportHandler) Text(c *gin.Context) {
	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}

	text := buildExportText(incomes, time.Now())

	h.notifier.ShowNow("Data Exported", "Your data has been exported successfully")

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(200, text)
}

// Excel 导出 Excel 账本
// @Summary 导出 Excel
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) Excel(c *gin.Context) {
	incomes, err := store.LoadIncomes()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取账本失败"))
		return
	}

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "收入记录"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 18)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 10)
	f.SetColWidth(sheetName, "F", "F", 30)

	// 写入表头
	headers := []string{"ID", "日期", "金额", "什一金额", "状态", "描述"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	for i, income := range incomes {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), income.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), income.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), income.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), income.Tithe().StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), income.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), income.Description)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
	}

	// 添加汇总行
	summary := service.Summarize(incomes)
	summaryRow := len(incomes) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), summary.TotalIncome.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), summary.TotalTithe.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(incomes)))
	f.MergeCell(sheetName, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	// 设置响应头
	filename := fmt.Sprintf("收入记录_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	// 写入响应
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}
