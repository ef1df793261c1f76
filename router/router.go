package router

import (
	"time"

	"tithe/api"
	"tithe/config"
	_ "tithe/docs"
	"tithe/middleware"
	"tithe/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, notifier *service.Notifier) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录，带限流）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 收入记录相关
			incomeHandler := api.NewIncomeHandler(notifier)
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.DELETE("", incomeHandler.ClearAll)
				incomes.GET("/future", incomeHandler.Future)
				incomes.POST("/:id/done", incomeHandler.MarkDone)
				incomes.DELETE("/:id", incomeHandler.Delete)
			}

			// 统计分析
			analyticsHandler := api.NewAnalyticsHandler()
			authorized.GET("/analytics", analyticsHandler.Get)

			// 月度目标
			goalHandler := api.NewGoalHandler(notifier)
			goal := authorized.Group("/goal")
			{
				goal.GET("", goalHandler.Get)
				goal.PUT("", goalHandler.Save)
				goal.DELETE("", goalHandler.Clear)
			}

			// 提醒设置
			reminderHandler := api.NewReminderHandler(notifier)
			reminders := authorized.Group("/reminders")
			{
				reminders.GET("/settings", reminderHandler.GetSettings)
				reminders.PUT("/settings", reminderHandler.SaveSettings)
				reminders.GET("/upcoming", reminderHandler.Upcoming)
			}

			// 邮件配置
			emailHandler := api.NewEmailHandler(cfg)
			authorized.POST("/email/test", emailHandler.SendTest)

			// 导出相关
			exportHandler := api.NewExportHandler(notifier)
			export := authorized.Group("/export")
			{
				export.GET("/text", exportHandler.Text)
				export.GET("/excel", exportHandler.Excel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
