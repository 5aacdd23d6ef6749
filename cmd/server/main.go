package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/config"
	"github.com/wellnest/internal/db"
	"github.com/wellnest/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 按需写入种子账号，便于本地联调
	if cfg.SeedUserEmail != "" && cfg.SeedUserPass != "" {
		if err := db.EnsureUser(cfg.SeedUserEmail, cfg.SeedUserPass); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(&cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
