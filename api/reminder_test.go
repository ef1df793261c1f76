package api

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"tithe/config"
	"tithe/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupReminderRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReminderHandler(testNotifier())
	r := gin.New()
	r.GET("/reminders/settings", h.GetSettings)
	r.PUT("/reminders/settings", h.SaveSettings)
	r.GET("/reminders/upcoming", h.Upcoming)
	return r
}

func expectLoadSettings(mock sqlmock.Sqlmock, value string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `records`")).
		WithArgs(models.RecordKeyReminderSettings, 1).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow(models.RecordKeyReminderSettings, value, time.Now()))
}

func TestGetSettings(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupReminderRouter()

	expectLoadSettings(mock, `{"pushEnabled":true,"recurring":false,"daysBefore":5,"time":"20:30","soundEnabled":false}`)

	w := doJSON(r, "GET", "/reminders/settings", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"daysBefore":5`)
	assert.Contains(t, w.Body.String(), `"time":"20:30"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSettingsFirstReadSeedsDefaults(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupReminderRouter()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `records`")).
		WithArgs(models.RecordKeyReminderSettings, 1).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `records`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(r, "GET", "/reminders/settings", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pushEnabled":false`)
	assert.Contains(t, w.Body.String(), `"daysBefore":3`)
	assert.Contains(t, w.Body.String(), `"time":"09:00"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSettings(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupReminderRouter()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `records`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(r, "PUT", "/reminders/settings",
		`{"pushEnabled":true,"recurring":true,"daysBefore":7,"time":"08:15","soundEnabled":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "设置已保存")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSettingsValidation(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	setupMockDB(t)
	r := setupReminderRouter()

	// daysBefore 不在可选值里
	w := doJSON(r, "PUT", "/reminders/settings",
		`{"pushEnabled":true,"recurring":true,"daysBefore":4,"time":"09:00","soundEnabled":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "daysBefore")

	// 时间格式错误
	w2 := doJSON(r, "PUT", "/reminders/settings",
		`{"pushEnabled":true,"recurring":true,"daysBefore":3,"time":"9点","soundEnabled":true}`)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestUpcoming(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupReminderRouter()

	future := time.Now().AddDate(0, 0, 30).Format(time.RFC3339)
	expectLoadIncomes(mock, `[{"id":1,"amount":"100","description":"工资","date":"`+future+`","status":"pending"}]`)
	expectLoadSettings(mock, `{"pushEnabled":true,"recurring":true,"daysBefore":3,"time":"09:00","soundEnabled":true}`)

	w := doJSON(r, "GET", "/reminders/upcoming", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tithe Reminder")
	assert.Contains(t, w.Body.String(), "Daily Tithe Check")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpcomingPushDisabled(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock := setupMockDB(t)
	r := setupReminderRouter()

	expectLoadIncomes(mock, `[]`)
	expectLoadSettings(mock, `{"pushEnabled":false,"recurring":true,"daysBefore":3,"time":"09:00","soundEnabled":true}`)

	w := doJSON(r, "GET", "/reminders/upcoming", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
