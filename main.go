package main

import (
	"flag"
	"log"
	"strings"

	"tithe/config"
	"tithe/database"
	"tithe/middleware"
	"tithe/router"
	"tithe/service"
)

// @title 十一奉献记账 API
// @version 1.0
// @description 单用户的什一奉献记账服务，支持收入登记、什一提醒排期、统计分析、月度目标和数据导出
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("十一奉献记账 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 初始化 JWT
	middleware.InitJWT(cfg)

	// 通知调度器：启动投递循环，并按当前账本重建全部排期
	notifier := service.NewNotifier(service.NewEmailService(&cfg.Email))
	if cfg.Email.Enabled {
		log.Println("通知通道: 邮件")
	} else {
		log.Println("通知通道: 日志（未配置邮件）")
	}
	notifier.Start()
	notifier.Resync()

	// 设置路由
	r := router.SetupRouter(cfg, notifier)

	// 启动服务器
	log.Printf("==========================================")
	log.Printf("  🙏 十一奉献记账已启动")
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
