package api

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"tithe/config"
	"tithe/database"
	"tithe/models"
	"tithe/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB 创建一个基于 sqlmock 的 gorm 连接用于测试
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	database.DB = gormDB
	return mock
}

func initTestConfig() {
	config.GlobalConfig = &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
	}
}

// testNotifier 邮件未启用，投递降级为日志，通知副作用不会让用例失败
func testNotifier() *service.Notifier {
	return service.NewNotifier(service.NewEmailService(&config.EmailConfig{}))
}

func setupIncomeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewIncomeHandler(testNotifier())
	r := gin.New()
	r.POST("/incomes", h.Create)
	r.GET("/incomes", h.List)
	r.DELETE("/incomes", h.ClearAll)
	r.GET("/incomes/future", h.Future)
	r.POST("/incomes/:id/done", h.MarkDone)
	r.DELETE("/incomes/:id", h.Delete)
	return r
}

func expectLoadIncomes(mock sqlmock.Sqlmock, ledger string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `records`")).
		WithArgs(models.RecordKeyIncomes, 1).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow(models.RecordKeyIncomes, ledger, time.Now()))
}

func expectMissingIncomes(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `records`")).
		WithArgs(models.RecordKeyIncomes, 1).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))
}

func expectSaveIncomes(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `records`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateIncome(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectMissingIncomes(mock)
	expectSaveIncomes(mock)

	w := doJSON(r, "POST", "/incomes", `{"amount":1000,"description":"工资","date":"2026-08-25"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "录入成功")
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	assert.Contains(t, w.Body.String(), `"tithe":"100"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncomeDefaultsDescriptionAndDate(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectMissingIncomes(mock)
	expectSaveIncomes(mock)

	w := doJSON(r, "POST", "/incomes", `{"amount":50}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.DefaultDescription)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncomeInvalidAmount(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	setupMockDB(t)
	r := setupIncomeRouter()

	// 金额必须为正，校验失败前不应有任何写入
	w := doJSON(r, "POST", "/incomes", `{"amount":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w2 := doJSON(r, "POST", "/incomes", `{"amount":0}`)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestCreateIncomeBadDate(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	setupMockDB(t)
	r := setupIncomeRouter()

	w := doJSON(r, "POST", "/incomes", `{"amount":100,"date":"25/08/2026"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "日期格式错误")
}

const testLedger = `[
  {"id":1,"amount":"1000","description":"工资","date":"2026-08-10T00:00:00+08:00","status":"pending"},
  {"id":2,"amount":"200","description":"兼职","date":"2026-08-15T00:00:00+08:00","status":"done"}
]`

func TestListIncomes(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectLoadIncomes(mock, testLedger)

	w := doJSON(r, "GET", "/incomes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	// 日期倒序，后面的记录排前面
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "兼职"), strings.Index(body, "工资"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIncomesStatusFilter(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectLoadIncomes(mock, testLedger)

	w := doJSON(r, "GET", "/incomes?status=pending", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "工资")
	assert.NotContains(t, w.Body.String(), "兼职")

	// 非法过滤值
	w2 := doJSON(r, "GET", "/incomes?status=unknown", "")
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestListIncomesStatusAll(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectLoadIncomes(mock, testLedger)

	// all 等价于不过滤
	w := doJSON(r, "GET", "/incomes?status=all", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "工资")
	assert.Contains(t, w.Body.String(), "兼职")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkDone(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectLoadIncomes(mock, testLedger)
	expectSaveIncomes(mock)

	w := doJSON(r, "POST", "/incomes/1/done", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"done"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkDoneIdempotent(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	// 已是 done 的记录重复标记不触发写入
	expectLoadIncomes(mock, testLedger)

	w := doJSON(r, "POST", "/incomes/2/done", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"done"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkDoneNotFound(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectLoadIncomes(mock, `[]`)

	w := doJSON(r, "POST", "/incomes/999/done", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteIncome(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectLoadIncomes(mock, testLedger)
	expectSaveIncomes(mock)

	w := doJSON(r, "DELETE", "/incomes/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "删除成功")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIncomeNotFound(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	expectLoadIncomes(mock, testLedger)

	w := doJSON(r, "DELETE", "/incomes/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearAll(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `records`")).
		WithArgs(models.RecordKeyIncomes).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(r, "DELETE", "/incomes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "已清空")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFutureIncomes(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupIncomeRouter()

	future := time.Now().AddDate(0, 0, 10).Format(time.RFC3339)
	ledger := `[
  {"id":1,"amount":"1000","description":"旧收入","date":"2020-01-01T00:00:00+08:00","status":"done"},
  {"id":2,"amount":"500","description":"未来收入","date":"` + future + `","status":"pending"}
]`
	expectLoadIncomes(mock, ledger)

	w := doJSON(r, "GET", "/incomes/future", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "未来收入")
	assert.NotContains(t, w.Body.String(), "旧收入")
	assert.NoError(t, mock.ExpectationsWereMet())
}
