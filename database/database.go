package database

import (
	"encoding/json"
	"fmt"
	"log"

	"tithe/config"
	"tithe/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 单用户应用，小连接池足够
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.Record{},
		&models.Notification{},
	); err != nil {
		return err
	}

	// 初始化默认提醒设置（仅当文档不存在时）
	var cnt int64
	DB.Model(&models.Record{}).Where("`key` = ?", models.RecordKeyReminderSettings).Count(&cnt)
	if cnt == 0 {
		raw, err := json.Marshal(models.DefaultReminderSettings())
		if err == nil {
			_ = DB.Create(&models.Record{
				Key:   models.RecordKeyReminderSettings,
				Value: string(raw),
			}).Error
		}
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
